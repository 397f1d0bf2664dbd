package audio

import "io"

// mockStream is a test helper that hands out a fixed list of blocks.
// It implements the Stream interface.
type mockStream struct {
	channels int
	blocks   []*Block
	pos      int
	err      error // returned once blocks are exhausted, io.EOF if nil
	closed   bool
}

func newMockStream(channels int, blocks ...*Block) *mockStream {
	return &mockStream{channels: channels, blocks: blocks}
}

func (m *mockStream) Channels() int { return m.channels }

func (m *mockStream) Next() (*Block, error) {
	if m.pos >= len(m.blocks) {
		if m.err != nil {
			return nil, m.err
		}
		return nil, io.EOF
	}

	b := m.blocks[m.pos]
	m.pos++

	return b, nil
}

func (m *mockStream) Close() error {
	m.closed = true
	return nil
}

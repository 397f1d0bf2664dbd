// SPDX-License-Identifier: EPL-2.0

package magic

import "errors"

var (
	ErrBadSignature   = errors.New("signature needs a magic string and a description")
	ErrSignatureRange = errors.New("signature lies outside the inspected head of the file")
)

// SPDX-License-Identifier: EPL-2.0

// Package digest keeps one incremental BLAKE2b-512 accumulator per audio
// channel and folds the finished per-channel digests into one value.
//
// Accumulators are absorbed in stream order and finalized exactly once:
//
//	bank, err := digest.NewBank(2)
//	if err != nil {
//	    return err
//	}
//	bank.Absorb(0, leftBytes)
//	bank.Absorb(1, rightBytes)
//
//	digests, err := bank.Finalize()
//	if err != nil {
//	    return err
//	}
//	sum := digest.XORFold(digests)
//
// Because each channel has its own accumulator, the digests depend only on
// the ordered bytes of each channel and not on how they were split across
// Absorb calls. XORFold is commutative, so the folded value does not depend
// on channel order either; callers that need to tell swapped channels apart
// must compare the per-channel digests.
package digest

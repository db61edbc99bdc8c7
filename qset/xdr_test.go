package qset_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumsat/fbasqi/qset"
)

type fakeXDRDecoder struct {
	validators []qset.ValidatorID
	qsets      []*qset.XDRQuorumSet
	err        error
}

func (f fakeXDRDecoder) Decode([]byte) ([]qset.ValidatorID, []*qset.XDRQuorumSet, error) {
	return f.validators, f.qsets, f.err
}

func TestDecodeXDR_NilDecoder(t *testing.T) {
	_, err := qset.DecodeXDR(nil, []byte("x"))
	assert.ErrorIs(t, err, qset.ErrNilXDRDecoder)
}

func TestDecodeXDR_PropagatesUnderlyingError(t *testing.T) {
	wantErr := errors.New("boom")
	_, err := qset.DecodeXDR(fakeXDRDecoder{err: wantErr}, []byte("x"))
	assert.ErrorIs(t, err, wantErr)
}

func TestDecodeXDR_MismatchedArrays(t *testing.T) {
	dec := fakeXDRDecoder{
		validators: []qset.ValidatorID{"v1", "v2"},
		qsets:      []*qset.XDRQuorumSet{{Threshold: 1}},
	}
	_, err := qset.DecodeXDR(dec, []byte("x"))
	assert.ErrorIs(t, err, qset.ErrMismatchedArrays)
}

func TestDecodeXDR_Happy(t *testing.T) {
	dec := fakeXDRDecoder{
		validators: []qset.ValidatorID{"v1", "v2"},
		qsets: []*qset.XDRQuorumSet{
			{Threshold: 1, Validators: []qset.ValidatorID{"v1"}},
			{Threshold: 1, Validators: []qset.ValidatorID{"v2"}},
		},
	}
	m, err := qset.DecodeXDR(dec, []byte("x"))
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, 1, m["v1"].Threshold)
}

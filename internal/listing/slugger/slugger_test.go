package slugger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func takenSet(slugs ...string) Lookup {
	set := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		set[s] = true
	}
	return func(s string) (bool, error) {
		return set[s], nil
	}
}

func TestGenerateBareSlugWhenFree(t *testing.T) {
	got, err := Generate("Cozy Home", takenSet())
	require.NoError(t, err)
	assert.Equal(t, "cozy-home", got)
}

func TestGenerateNormalization(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Cozy Home", "cozy-home"},
		{"  Spacious   2BHK!  ", "spacious-2bhk"},
		{"Sea-View Apartment", "sea-view-apartment"},
		{"Büro in Berlin", "buro-in-berlin"},
	}
	for _, tc := range cases {
		got, err := Generate(tc.title, takenSet())
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "title %q", tc.title)
	}
}

func TestGenerateZeroPaddedSuffixProbing(t *testing.T) {
	got, err := Generate("Cozy Home", takenSet("cozy-home"))
	require.NoError(t, err)
	assert.Equal(t, "cozy-home-0001", got)

	got, err = Generate("Cozy Home", takenSet("cozy-home", "cozy-home-0001", "cozy-home-0002"))
	require.NoError(t, err)
	assert.Equal(t, "cozy-home-0003", got)
}

func TestGenerateEmptyTitleFallsBack(t *testing.T) {
	got, err := Generate("!!!", takenSet())
	require.NoError(t, err)
	assert.Equal(t, "listing", got)
}

func TestGeneratePropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := Generate("Cozy Home", func(string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGenerateExhaustedSuffixSpace(t *testing.T) {
	_, err := Generate("Cozy Home", func(string) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, ErrExhausted)
}

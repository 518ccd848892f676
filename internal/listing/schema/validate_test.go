package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }
func intPtr(v int64) *int64   { return &v }

func validCandidate() Candidate {
	return Candidate{
		PropertyID:  strPtr("prop-12-baker-street"),
		Title:       strPtr("Cozy Home"),
		Price:       intPtr(25000),
		Description: strPtr("Two bedroom house close to the park."),
		Area:        intPtr(1200),
		Floors:      intPtr(2),
		Facing:      strPtr("North"),
		Category:    strPtr("House"),
		Type:        strPtr("Rent"),
		Bedrooms:    intPtr(2),
		Bathrooms:   intPtr(1),
		StreetName:  strPtr("12 Baker Street"),
		City:        strPtr("Pune"),
		Country:     strPtr("India"),
		OwnerRef:    strPtr("owner_dev"),
	}
}

func messagesByField(r Result) map[string]string {
	out := make(map[string]string, len(r.Violations))
	for _, v := range r.Violations {
		out[v.Field] = v.Message
	}
	return out
}

func TestValidateAcceptsCompleteCandidate(t *testing.T) {
	result := Validate(validCandidate(), ModeCreate)
	assert.True(t, result.Valid(), "violations: %v", result.Violations)
}

func TestValidateCollectsEveryMissingRequiredField(t *testing.T) {
	result := Validate(Candidate{}, ModeCreate)
	require.False(t, result.Valid())

	msgs := messagesByField(result)
	assert.Equal(t, "Please provide a property ID", msgs["propertyId"])
	assert.Equal(t, "Please provide a title for the property", msgs["title"])
	assert.Equal(t, "Please provide a price for the property", msgs["price"])
	assert.Equal(t, "Please provide a description for the property", msgs["description"])
	assert.Equal(t, "Please provide the area of the property", msgs["area"])
	assert.Equal(t, "Please provide the number of floors in the property", msgs["floors"])
	assert.Equal(t, "Please provide the facing direction of the property", msgs["facing"])
	assert.Equal(t, "Please provide a category for the property", msgs["category"])
	assert.Equal(t, "Please provide a street name or landmark for the property", msgs["address.streetName"])
	assert.Equal(t, "Please provide the city of the property", msgs["address.city"])
	assert.Equal(t, "Please provide the country of the property", msgs["address.country"])
	assert.Equal(t, "Please provide a property owner", msgs["ownerRef"])

	// optional fields never appear
	assert.NotContains(t, msgs, "type")
	assert.NotContains(t, msgs, "bedrooms")
	assert.NotContains(t, msgs, "bathrooms")
	assert.Len(t, result.Violations, 12)
}

func TestValidateDoesNotFailFast(t *testing.T) {
	c := validCandidate()
	c.Price = intPtr(500)
	c.Area = intPtr(5)
	c.Facing = strPtr("Up")
	result := Validate(c, ModeCreate)

	msgs := messagesByField(result)
	assert.Equal(t, "Price cannot be less than 1000", msgs["price"])
	assert.Equal(t, "Area cannot be less than 10 sq.feet", msgs["area"])
	assert.Equal(t, "Up is not in the facing list", msgs["facing"])
	assert.Len(t, result.Violations, 3)
}

func TestValidatePriceBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		price   int64
		wantMsg string
	}{
		{"at lower bound", 1000, ""},
		{"below lower bound", 999, "Price cannot be less than 1000"},
		{"at upper bound", 100000000, ""},
		{"above upper bound", 100000001, "Price cannot be more than 100000000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validCandidate()
			c.Price = intPtr(tc.price)
			result := Validate(c, ModeCreate)
			msgs := messagesByField(result)
			if tc.wantMsg == "" {
				assert.NotContains(t, msgs, "price")
			} else {
				assert.Equal(t, tc.wantMsg, msgs["price"])
			}
		})
	}
}

func TestValidateTitleAndDescriptionLength(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'a'
		}
		return string(b)
	}

	c := validCandidate()
	c.Title = strPtr(long(101))
	c.Description = strPtr(long(3001))
	result := Validate(c, ModeCreate)

	msgs := messagesByField(result)
	assert.Equal(t, "Title cannot be more than 100 characters", msgs["title"])
	assert.Equal(t, "Description cannot be more than 3000 characters", msgs["description"])

	c.Title = strPtr(long(100))
	c.Description = strPtr(long(3000))
	assert.True(t, Validate(c, ModeCreate).Valid())
}

func TestValidateLengthCountsCharactersNotBytes(t *testing.T) {
	// 80 Cyrillic characters encode to 160 bytes; still within the bound.
	title := strings.Repeat("д", 80)
	result := Validate(Candidate{Title: strPtr(title)}, ModeUpdate)
	assert.True(t, result.Valid(), "violations: %v", result.Violations)

	c := validCandidate()
	c.Title = strPtr(strings.Repeat("水", 100))
	c.Description = strPtr(strings.Repeat("é", 3000))
	assert.True(t, Validate(c, ModeCreate).Valid())

	c.Title = strPtr(strings.Repeat("水", 101))
	c.Description = strPtr(strings.Repeat("é", 3001))
	msgs := messagesByField(Validate(c, ModeCreate))
	assert.Equal(t, "Title cannot be more than 100 characters", msgs["title"])
	assert.Equal(t, "Description cannot be more than 3000 characters", msgs["description"])
}

func TestValidateEnumMembership(t *testing.T) {
	c := validCandidate()
	c.Category = strPtr("Castle")
	c.Type = strPtr("Lease")
	result := Validate(c, ModeCreate)

	msgs := messagesByField(result)
	assert.Equal(t, "Castle is not in the category list", msgs["category"])
	assert.Equal(t, "Lease is not in the type list", msgs["type"])
}

func TestValidateNegativeRoomCounts(t *testing.T) {
	c := validCandidate()
	c.Bedrooms = intPtr(-1)
	c.Bathrooms = intPtr(-2)
	result := Validate(c, ModeCreate)

	msgs := messagesByField(result)
	assert.Equal(t, "Bedrooms cannot be less than 0", msgs["bedrooms"])
	assert.Equal(t, "Bathrooms cannot be less than 0", msgs["bathrooms"])
}

func TestValidateUpdateSkipsAbsentFields(t *testing.T) {
	// A partial candidate with only a price is fine on update.
	result := Validate(Candidate{Price: intPtr(50000)}, ModeUpdate)
	assert.True(t, result.Valid(), "violations: %v", result.Violations)
}

func TestValidateUpdateStillConstrainsSuppliedFields(t *testing.T) {
	result := Validate(Candidate{Price: intPtr(1)}, ModeUpdate)
	require.False(t, result.Valid())
	assert.Equal(t, "Price cannot be less than 1000", result.Violations[0].Message)
}

func TestValidateUpdateRejectsSuppliedEmptyRequiredField(t *testing.T) {
	result := Validate(Candidate{City: strPtr("   ")}, ModeUpdate)
	require.False(t, result.Valid())
	assert.Equal(t, "address.city", result.Violations[0].Field)
	assert.Equal(t, "Please provide the city of the property", result.Violations[0].Message)
}

func TestValidateStateIsUnconstrained(t *testing.T) {
	c := validCandidate()
	c.State = strPtr("")
	assert.True(t, Validate(c, ModeCreate).Valid())
}

func TestValidateTrimsWhitespaceBeforeChecking(t *testing.T) {
	c := validCandidate()
	c.Title = strPtr("   ")
	result := Validate(c, ModeCreate)
	msgs := messagesByField(result)
	assert.Equal(t, "Please provide a title for the property", msgs["title"])
}

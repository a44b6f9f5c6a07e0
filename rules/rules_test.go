package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendario/shiftboard/types"
)

func TestAddPair_Guards(t *testing.T) {
	r := NewRuleSet()

	require.NoError(t, r.AddForbiddenPair("alice", "bob"))

	var uie *types.UserInputError
	require.ErrorAs(t, r.AddForbiddenPair("alice", "alice"), &uie)
	require.ErrorAs(t, r.AddForbiddenPair("alice", "bob"), &uie)
	// The reversed order is the same pair.
	require.ErrorAs(t, r.AddForbiddenPair("bob", "alice"), &uie)
	// So is the same pair on the other list.
	require.ErrorAs(t, r.AddRequiredPair("bob", "alice"), &uie)
	require.ErrorAs(t, r.AddForbiddenPair("", "bob"), &uie)

	assert.Equal(t, []Pair{{A: "alice", B: "bob"}}, r.ForbiddenPairs)
}

func TestRemovePair_EitherOrder(t *testing.T) {
	r := NewRuleSet()
	require.NoError(t, r.AddRequiredPair("alice", "bob"))

	assert.False(t, r.RemoveRequiredPair("alice", "carol"))
	assert.True(t, r.RemoveRequiredPair("bob", "alice"))
	assert.Empty(t, r.RequiredPairs)
}

func TestEmployeeAttributes(t *testing.T) {
	r := NewRuleSet()
	require.NoError(t, r.AddDefinedAttribute("driver"))
	require.NoError(t, r.AddDefinedAttribute("keyholder"))

	require.NoError(t, r.SetEmployeeAttributes("alice", []string{"driver", "keyholder"}))

	var uie *types.UserInputError
	require.ErrorAs(t, r.SetEmployeeAttributes("bob", []string{"pilot"}), &uie)
	require.ErrorAs(t, r.SetEmployeeAttributes("", nil), &uie)

	// Reassigning with an empty list clears the tags but keeps the entry.
	require.NoError(t, r.SetEmployeeAttributes("alice", nil))
	attrs, ok := r.EmployeeAttributes["alice"]
	require.True(t, ok)
	assert.Empty(t, attrs)
}

func TestDefinedAttributes(t *testing.T) {
	r := NewRuleSet()
	require.NoError(t, r.AddDefinedAttribute("driver"))

	var uie *types.UserInputError
	require.ErrorAs(t, r.AddDefinedAttribute("driver"), &uie)
	require.ErrorAs(t, r.AddDefinedAttribute(""), &uie)

	require.NoError(t, r.AddDefinedAttribute("keyholder"))
	require.NoError(t, r.SetEmployeeAttributes("alice", []string{"driver", "keyholder"}))
	require.NoError(t, r.SetRequiredAttribute("driver", 2))

	// Dropping a defined attribute sweeps out every reference to it.
	require.True(t, r.RemoveDefinedAttribute("driver"))
	assert.Equal(t, []string{"keyholder"}, r.DefinedAttributes)
	assert.Equal(t, []string{"keyholder"}, r.EmployeeAttributes["alice"])
	assert.NotContains(t, r.RequiredAttributes, "driver")

	assert.False(t, r.RemoveDefinedAttribute("driver"))
}

func TestRequiredAttributes(t *testing.T) {
	r := NewRuleSet()

	require.NoError(t, r.SetRequiredAttribute("driver", 2))
	// Overwriting an existing count is allowed, matching the form.
	require.NoError(t, r.SetRequiredAttribute("driver", 3))
	assert.Equal(t, 3, r.RequiredAttributes["driver"])

	var uie *types.UserInputError
	require.ErrorAs(t, r.SetRequiredAttribute("", 1), &uie)
	require.ErrorAs(t, r.SetRequiredAttribute("driver", -1), &uie)
}

func TestSpecialized(t *testing.T) {
	r := NewRuleSet()

	require.NoError(t, r.AddSpecializedStaff("concert", "alice"))
	require.NoError(t, r.AddSpecializedStaff("concert", "bob"))

	var uie *types.UserInputError
	require.ErrorAs(t, r.AddSpecializedStaff("concert", "alice"), &uie)
	require.ErrorAs(t, r.AddSpecializedStaff("", "alice"), &uie)
	require.ErrorAs(t, r.SetSpecialized("wedding", nil), &uie)

	require.NoError(t, r.SetSpecialized("concert", []string{"carol"}))
	assert.Equal(t, []string{"carol"}, r.Specialized["concert"])

	assert.True(t, r.RemoveSpecialized("concert"))
	assert.False(t, r.RemoveSpecialized("concert"))
}

func TestRemoveSpecializedStaff(t *testing.T) {
	r := NewRuleSet()

	require.NoError(t, r.AddSpecializedStaff("concert", "alice"))
	require.NoError(t, r.AddSpecializedStaff("concert", "bob"))

	assert.False(t, r.RemoveSpecializedStaff("wedding", "alice"))
	assert.False(t, r.RemoveSpecializedStaff("concert", "carol"))

	assert.True(t, r.RemoveSpecializedStaff("concert", "alice"))
	assert.Equal(t, []string{"bob"}, r.Specialized["concert"])

	// Removing the last employee retires the category itself.
	assert.True(t, r.RemoveSpecializedStaff("concert", "bob"))
	_, ok := r.Specialized["concert"]
	assert.False(t, ok)

	assert.False(t, r.RemoveSpecializedStaff("concert", "bob"))
}

func TestParsePairs(t *testing.T) {
	pairs := ParsePairs("alice-bob,carol-dave,,broken,-x,y-")
	assert.Equal(t, []Pair{{A: "alice", B: "bob"}, {A: "carol", B: "dave"}}, pairs)

	assert.Empty(t, ParsePairs(""))
}

func TestEncodePairs(t *testing.T) {
	assert.Equal(t, "alice-bob,carol-dave",
		EncodePairs([]Pair{{A: "alice", B: "bob"}, {A: "carol", B: "dave"}}))
	assert.Empty(t, EncodePairs(nil))
}

func TestEmployeeAttributesCodec(t *testing.T) {
	attrs := ParseEmployeeAttributes("alice:driver|keyholder,bob:,carol:carrier,,:x")
	assert.Equal(t, map[string][]string{
		"alice": {"driver", "keyholder"},
		"bob":   {},
		"carol": {"carrier"},
	}, attrs)

	// Attribute-less employees are dropped on encode, as the form does.
	assert.Equal(t, "alice:driver|keyholder,carol:carrier", EncodeEmployeeAttributes(attrs))
}

func TestRequiredAttributesCodec(t *testing.T) {
	counts := ParseRequiredAttributes("driver:2,keyholder:1,junk,broken:x")
	assert.Equal(t, map[string]int{"driver": 2, "keyholder": 1, "broken": 0}, counts)

	assert.Equal(t, "broken:0,driver:2,keyholder:1", EncodeRequiredAttributes(counts))
}

func TestFieldsRoundTrip(t *testing.T) {
	r := NewRuleSet()
	r.MaxConsecutiveDays = 5
	r.MinStaffPerDay = 2
	require.NoError(t, r.AddForbiddenPair("alice", "bob"))
	require.NoError(t, r.AddRequiredPair("carol", "dave"))
	require.NoError(t, r.AddDefinedAttribute("driver"))
	require.NoError(t, r.SetEmployeeAttributes("alice", []string{"driver"}))
	require.NoError(t, r.SetRequiredAttribute("driver", 1))
	require.NoError(t, r.AddSpecializedStaff("concert", "alice"))

	fields, err := r.Fields()
	require.NoError(t, err)
	assert.Equal(t, "5", fields[FieldMaxConsecutiveDays])
	assert.Equal(t, "alice-bob", fields[FieldForbiddenPairs])

	parsed, err := ParseFields(fields)
	require.NoError(t, err)
	assert.Equal(t, r.MaxConsecutiveDays, parsed.MaxConsecutiveDays)
	assert.Equal(t, r.MinStaffPerDay, parsed.MinStaffPerDay)
	assert.Equal(t, r.ForbiddenPairs, parsed.ForbiddenPairs)
	assert.Equal(t, r.RequiredPairs, parsed.RequiredPairs)
	assert.Equal(t, r.EmployeeAttributes, parsed.EmployeeAttributes)
	assert.Equal(t, r.RequiredAttributes, parsed.RequiredAttributes)
	assert.Equal(t, r.DefinedAttributes, parsed.DefinedAttributes)
	assert.Equal(t, r.Specialized, parsed.Specialized)
}

func TestParseFields_Errors(t *testing.T) {
	var uie *types.UserInputError

	_, err := ParseFields(map[string]string{FieldMaxConsecutiveDays: "lots"})
	require.ErrorAs(t, err, &uie)

	_, err = ParseFields(map[string]string{FieldMinStaffPerDay: "-1"})
	require.ErrorAs(t, err, &uie)

	_, err = ParseFields(map[string]string{FieldDefinedAttributes: "{not a list}"})
	require.ErrorAs(t, err, &uie)

	_, err = ParseFields(map[string]string{FieldSpecialized: "[]"})
	require.ErrorAs(t, err, &uie)
}

func TestParseFields_Empty(t *testing.T) {
	r, err := ParseFields(map[string]string{})
	require.NoError(t, err)

	assert.Zero(t, r.MaxConsecutiveDays)
	assert.Empty(t, r.ForbiddenPairs)
	assert.NotNil(t, r.EmployeeAttributes)
	assert.NotNil(t, r.Specialized)
}

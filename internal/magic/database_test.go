package magic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	db, err := LoadDefault()
	require.NoError(t, err)
	require.NotEmpty(t, db.Entries)

	names := make(map[string]bool)
	for _, e := range db.Entries {
		names[e.Name] = true
		require.NotEmpty(t, e.Rules)
	}
	assert.True(t, names["squashfs-le"])
	assert.True(t, names["ext-superblock"])
}

func TestParseRejectsUnknownDataType(t *testing.T) {
	_, err := Parse([]byte(`
entries:
  - name: bad
    rules:
      - level: 0
        offset: 0
        type: nonsense
        test: equal
        value_hex: 1
`))
	assert.Error(t, err)
}

func TestParseRejectsMissingPayload(t *testing.T) {
	// A rule with no type at all falls through parseDataType's switch to
	// an error, which is exactly the defect this guards against.
	_, err := Parse([]byte(`
entries:
  - name: bad
    rules:
      - level: 0
        offset: 0
        test: equal
`))
	assert.Error(t, err)
}

func TestRuleValidateStringRuleRejectsBadTest(t *testing.T) {
	r := Rule{
		Test:   TestLessThan,
		String: &StringSpec{Literal: []byte("x")},
	}
	err := r.Validate()
	assert.Error(t, err)
}

func TestRuleValidateStringRuleRejectsEmptyLiteral(t *testing.T) {
	r := Rule{
		Test:   TestEqual,
		String: &StringSpec{Literal: nil},
	}
	assert.Error(t, r.Validate())
}

func TestRuleValidateSignedRejectsOperation(t *testing.T) {
	r := Rule{
		Test: TestEqual,
		Number: &NumberSpec{
			DataType: DataInt32,
			Endian:   EndianBig,
			Op:       OpAnd,
		},
	}
	assert.Error(t, r.Validate())
}

func TestRuleValidateDateIgnoresTestAndOp(t *testing.T) {
	r := Rule{
		Test: TestEqual,
		Number: &NumberSpec{
			DataType: DataDateUnsigned,
			Endian:   EndianLittle,
			Op:       OpAnd,
		},
	}
	assert.NoError(t, r.Validate())
}

func TestRuleValidateUnspecifiedEndianOnlyForByteWidth(t *testing.T) {
	r := Rule{
		Test: TestEqual,
		Number: &NumberSpec{
			DataType: DataUint32,
			Endian:   EndianUnspecified,
		},
	}
	assert.Error(t, r.Validate())

	r.Number.DataType = DataUint8
	assert.NoError(t, r.Validate())
}

func TestRuleValidateMessagePlaceholderCrossCheck(t *testing.T) {
	r := Rule{
		Test:        TestEqual,
		HasArgument: true,
		Message:     "no placeholder here",
		Number:      &NumberSpec{DataType: DataUint8, Endian: EndianUnspecified},
	}
	assert.Error(t, r.Validate())

	r.Message = "count: %d"
	assert.NoError(t, r.Validate())

	r.HasArgument = false
	assert.Error(t, r.Validate())
}

func TestRuleWidth(t *testing.T) {
	r := Rule{String: &StringSpec{Literal: []byte("abcd")}}
	assert.Equal(t, 4, r.Width())

	r = Rule{Number: &NumberSpec{DataType: DataUint64}}
	assert.Equal(t, 8, r.Width())
}

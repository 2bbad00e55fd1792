package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameKey_Empty(t *testing.T) {
	assert.Equal(t, "", NameKey(""))
	assert.Equal(t, "", NameKey("   "))
}

func TestNameKey_Lowercases(t *testing.T) {
	assert.Equal(t, "patrick mahomes", NameKey("Patrick Mahomes"))
	assert.Equal(t, "patrick mahomes", NameKey("PATRICK MAHOMES"))
}

func TestNameKey_StripsSuffixTokens(t *testing.T) {
	assert.Equal(t, "patrick mahomes", NameKey("Patrick Mahomes II"))
	assert.Equal(t, "odell beckham", NameKey("Odell Beckham Jr."))
	assert.Equal(t, "frank gore", NameKey("Frank Gore Sr."))
	assert.Equal(t, "robert griffin", NameKey("Robert Griffin III"))
}

func TestNameKey_SuffixOnlyNameKept(t *testing.T) {
	// A one-word name is never emptied by suffix stripping.
	assert.Equal(t, "jr", NameKey("Jr"))
	assert.Equal(t, "v", NameKey("V"))
}

func TestNameKey_StripsPunctuation(t *testing.T) {
	assert.Equal(t, "ja marr chase", NameKey("Ja 'Marr Chase"))
	assert.Equal(t, NameKey("JuJu Smith-Schuster"), NameKey("JuJu SmithSchuster"))
	assert.Equal(t, "dj moore", NameKey("D.J. Moore"))
}

func TestNameKey_FoldsDiacritics(t *testing.T) {
	assert.Equal(t, NameKey("Jose Ramirez"), NameKey("José Ramírez"))
}

func TestNameKey_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "joe smith", NameKey("  Joe   Smith  "))
}

func TestNameKey_Idempotent(t *testing.T) {
	for _, raw := range []string{
		"Patrick Mahomes II",
		"Odell Beckham Jr.",
		"José Ramírez",
		"D'Andre Swift",
		"",
	} {
		once := NameKey(raw)
		assert.Equal(t, once, NameKey(once), "NameKey not idempotent for %q", raw)
	}
}

func TestNameKey_SpecEquivalence(t *testing.T) {
	assert.Equal(t, NameKey("Patrick Mahomes II"), NameKey("PATRICK MAHOMES"))
}

func TestDateKey_ISOPrefix(t *testing.T) {
	assert.Equal(t, "1990-01-01", DateKey("1990-01-01"))
	assert.Equal(t, "1990-01-01", DateKey("1990-01-01T00:00:00Z"))
	assert.Equal(t, "1990-01-01", DateKey("  1990-01-01 12:30:00  "))
}

func TestDateKey_NonISOPassesThrough(t *testing.T) {
	assert.Equal(t, "01/01/1990", DateKey("01/01/1990"))
	assert.Equal(t, "unknown", DateKey(" unknown "))
}

func TestDateKey_Empty(t *testing.T) {
	assert.Equal(t, "", DateKey(""))
	assert.Equal(t, "", DateKey("   "))
}

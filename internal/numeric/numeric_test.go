package numeric

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 7.0, SafeDivide(10, 0, 7))
	assert.Equal(t, 5.0, SafeDivide(10, 2, 7))
	assert.Equal(t, 9.0, SafeDivide(math.NaN(), 2, 9))
	assert.Equal(t, 9.0, SafeDivide(2, math.Inf(1), 9))
	assert.Equal(t, 0.0, SafeDivide(4, 0, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 100.0, Clamp(150, 0, 100))
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 100))
	assert.Equal(t, 10.0, Clamp(math.Inf(1), 10, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.75, Round(0.7499999, 2))
	assert.Equal(t, 3.0, Round(2.5, 0))
	assert.Equal(t, -3.0, Round(-2.5, 0), "half away from zero")
	assert.Equal(t, 112.5, Round(112.5, 2))
	assert.Equal(t, 0.0, Round(math.NaN(), 2))
	assert.Equal(t, 0.0, Round(math.Inf(-1), 2))
}

func TestRound_NoNegativeZero(t *testing.T) {
	got := Round(-0.001, 2)
	assert.False(t, math.Signbit(got))
}

func TestNonNegative(t *testing.T) {
	assert.Equal(t, 0.0, NonNegative(-3))
	assert.Equal(t, 3.0, NonNegative(3))
	assert.Equal(t, 0.0, NonNegative(math.NaN()))
	assert.Equal(t, 0.0, NonNegative(math.Inf(1)))
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, 12.5, Coerce("12.5"))
	assert.Equal(t, 12.5, Coerce(" 12.5 "))
	assert.Equal(t, 0.0, Coerce("twelve"))
	assert.Equal(t, 0.0, Coerce("NaN"))
	assert.Equal(t, 0.0, Coerce(nil))
	assert.Equal(t, 3.0, Coerce(3))
	assert.Equal(t, 1.0, Coerce(true))
	assert.Equal(t, 8.25, Coerce(json.Number("8.25")))
	assert.Equal(t, 0.0, Coerce(math.Inf(1)))
	assert.Equal(t, 0.0, Coerce(struct{}{}))
}

func TestSum_SkipsNonFinite(t *testing.T) {
	assert.Equal(t, 6.0, Sum(1, 2, math.NaN(), 3, math.Inf(1)))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0", FormatMoney(0))
	assert.Equal(t, "$0", FormatMoney(-0.4))
	assert.Equal(t, "$0", FormatMoney(math.NaN()))
	assert.Equal(t, "$1,000", FormatMoney(999.5))
	assert.Equal(t, "$12,345,678", FormatMoney(12345678))
	assert.Equal(t, "-$4,800", FormatMoney(-4800))
}

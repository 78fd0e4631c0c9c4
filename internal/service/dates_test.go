package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDateSerials(t *testing.T) {
	t.Parallel()

	// Serial 45366 is 2024-03-15: no adjustment at or above 60.
	got, err := ParseFlexibleDate(45366.0)
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", isoDate(got))

	got, err = ParseFlexibleDate(60.0)
	require.NoError(t, err)
	require.Equal(t, "1900-02-28", isoDate(got)) // the fictitious leap day collapses onto the 28th

	// Below 60 the conversion lands one day earlier than the plain epoch math.
	got, err = ParseFlexibleDate(59.0)
	require.NoError(t, err)
	require.Equal(t, "1900-02-26", isoDate(got))

	got, err = ParseFlexibleDate(2)
	require.NoError(t, err)
	require.Equal(t, "1899-12-31", isoDate(got))

	// Serial numbers at or below 1 are not dates.
	_, err = ParseFlexibleDate(1.0)
	require.ErrorIs(t, err, ErrUnparseableDate)
	_, err = ParseFlexibleDate(0)
	require.ErrorIs(t, err, ErrUnparseableDate)

	// Raw spreadsheet cells hand the serial over as a string.
	got, err = ParseFlexibleDate("45366")
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", isoDate(got))

	// Large serials stay exact day arithmetic from the epoch.
	got, err = ParseFlexibleDate(200000.0)
	require.NoError(t, err)
	require.Equal(t, "2447-07-30", isoDate(got))

	// Fractional serials carry a time-of-day but land on the same date.
	got, err = ParseFlexibleDate(45366.5)
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", isoDate(got))

	// The serial ceiling is 9999-12-31; anything past it is not a date.
	got, err = ParseFlexibleDate(2958465.0)
	require.NoError(t, err)
	require.Equal(t, "9999-12-31", isoDate(got))
	_, err = ParseFlexibleDate(2958466.0)
	require.ErrorIs(t, err, ErrUnparseableDate)

	// A digits-only malformed date must not sneak through as a huge serial.
	_, err = ParseFlexibleDate("20240315")
	require.ErrorIs(t, err, ErrUnparseableDate)
}

func TestParseFlexibleDateDayMonthYear(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"15-Mar-2024", "2024-03-15"},
		{"15-MAR-2024", "2024-03-15"},
		{"15-mar-2024", "2024-03-15"},
		{"5-Jan-2023", "2023-01-05"},
		{"1-dec-1999", "1999-12-01"},
	}
	for _, tc := range cases {
		got, err := ParseFlexibleDate(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, isoDate(got), tc.in)
	}

	for _, bad := range []string{"15-Foo-2024", "15-Mar-0000", "0-Mar-2024", "15-Ma-2024"} {
		_, err := ParseFlexibleDate(bad)
		require.ErrorIs(t, err, ErrUnparseableDate, bad)
	}
}

func TestParseFlexibleDateStrings(t *testing.T) {
	t.Parallel()

	got, err := ParseFlexibleDate("2024-03-15")
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", isoDate(got))

	got, err = ParseFlexibleDate("  2024-03-15  ")
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", isoDate(got))

	got, err = ParseFlexibleDate("03/18/2024")
	require.NoError(t, err)
	require.Equal(t, "2024-03-18", isoDate(got))

	for _, bad := range []any{"", "not a date", nil, struct{}{}, true} {
		_, err := ParseFlexibleDate(bad)
		require.ErrorIs(t, err, ErrUnparseableDate)
	}
}

func TestParseFlexibleDateIdempotent(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	got, err := ParseFlexibleDate(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = ParseFlexibleDate(time.Time{})
	require.ErrorIs(t, err, ErrUnparseableDate)

	// Re-normalizing the canonical rendering round-trips.
	again, err := ParseFlexibleDate(isoDate(got))
	require.NoError(t, err)
	require.Equal(t, isoDate(got), isoDate(again))
}

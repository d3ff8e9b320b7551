package phonelog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filski95/web-app-challets/internal/importer/phonelog"
)

const ownerA = "3e0bbf7c-6b6f-4f6e-9a2e-0c5a2f1d9b10"
const ownerB = "89b4a1de-7f19-4c2a-8d3c-52d5a9c4e711"

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"house;start_date;end_date;profile_id;owner_id",
		"1;2022-10-10;2022-10-15;7;" + ownerA,
		";;;;",
		"2;2022-10-11;2022-10-12;8;" + ownerB,
	}, "\n")

	params, err := phonelog.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, 1, params[0].HouseNumber)
	assert.Equal(t, int64(7), params[0].CustomerProfileID)
	assert.Equal(t, ownerA, params[0].OwnerID.String())
	assert.Equal(t, time.Date(2022, 10, 10, 0, 0, 0, 0, time.UTC), params[0].StartDate)
	assert.Equal(t, time.Date(2022, 10, 15, 0, 0, 0, 0, time.UTC), params[0].EndDate)

	assert.Equal(t, 2, params[1].HouseNumber)
	assert.Equal(t, int64(8), params[1].CustomerProfileID)
}

func TestParser_Parse_HeaderAfterPreamble(t *testing.T) {
	// Spreadsheet exports often carry a title row or two above the table.
	input := strings.Join([]string{
		"Phone bookings - December;;;;",
		"exported 2022-12-01;;;;",
		"house;start_date;end_date;profile_id;owner_id",
		"3;2022-12-27;2022-12-30;9;" + ownerA,
	}, "\n")

	params, err := phonelog.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, 3, params[0].HouseNumber)
}

func TestParser_Parse_ColumnsInAnyOrder(t *testing.T) {
	input := strings.Join([]string{
		"owner_id;profile_id;end_date;start_date;house;notes",
		ownerA + ";7;2022-10-15;2022-10-10;1;called twice",
	}, "\n")

	params, err := phonelog.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, 1, params[0].HouseNumber)
	assert.Equal(t, time.Date(2022, 10, 10, 0, 0, 0, 0, time.UTC), params[0].StartDate)
}

func TestParser_Parse_MissingHeader(t *testing.T) {
	input := "1;2022-10-10;2022-10-15;7;" + ownerA + "\n"

	params, err := phonelog.New().Parse(strings.NewReader(input))
	assert.Error(t, err)
	assert.Nil(t, params)
	assert.Contains(t, err.Error(), "no header row found")
}

func TestParser_Parse_BadRowReportsRowNumber(t *testing.T) {
	input := strings.Join([]string{
		"house;start_date;end_date;profile_id;owner_id",
		"1;2022-10-10;2022-10-15;7;" + ownerA,
		"1;not-a-date;2022-10-15;7;" + ownerA,
	}, "\n")

	params, err := phonelog.New().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Nil(t, params)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "start_date")
}

func TestParser_Parse_BadOwnerID(t *testing.T) {
	input := strings.Join([]string{
		"house;start_date;end_date;profile_id;owner_id",
		"1;2022-10-10;2022-10-15;7;not-a-uuid",
	}, "\n")

	_, err := phonelog.New().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner_id")
}

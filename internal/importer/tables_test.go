package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDemand(t *testing.T) {
	in := strings.NewReader(
		"SO No,Part No,Planner,Start Date,Rev Qty Due\n" +
			"9001,PART-A,3001,2026-03-02,10\n" +
			"9002.0,PART-B,3802,02/03/2026,\"1,200\"\n")

	rows, err := ParseDemand(in)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "9001", rows[0].OrderNo)
	assert.Equal(t, "PART-A", rows[0].PartNo)
	assert.Equal(t, "3001", rows[0].PlannerCode)
	assert.Equal(t, "2026-03-02", rows[0].StartDate)
	assert.Equal(t, "10", rows[0].QtyDue)

	// Values pass through untouched; normalization happens downstream.
	assert.Equal(t, "9002.0", rows[1].OrderNo)
	assert.Equal(t, "1,200", rows[1].QtyDue)
}

func TestParseDemand_MissingColumn(t *testing.T) {
	in := strings.NewReader("SO No,Part No,Planner,Start Date\n9001,PART-A,3001,2026-03-02\n")

	_, err := ParseDemand(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rev Qty Due")
}

func TestParseDemand_EmptyFile(t *testing.T) {
	_, err := ParseDemand(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseDemand_BOMAndCaseInsensitiveHeader(t *testing.T) {
	in := strings.NewReader("\xef\xbb\xbfso no,part no,planner,start date,rev qty due\n9001,PART-A,3001,2026-03-02,5\n")

	rows, err := ParseDemand(in)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "9001", rows[0].OrderNo)
}

func TestParseDemand_ExtraAndReorderedColumns(t *testing.T) {
	in := strings.NewReader(
		"Rev Qty Due,Site,SO No,Part No,Planner,Start Date\n" +
			"7,EU1,9001,PART-A,3001,2026-03-02\n")

	rows, err := ParseDemand(in)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0].QtyDue)
	assert.Equal(t, "9001", rows[0].OrderNo)
}

func TestParseStock_ShortRecord(t *testing.T) {
	in := strings.NewReader("PART_NO,Available Qty\nPART-A\n")

	rows, err := ParseStock(in)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PART-A", rows[0].PartNo)
	assert.Equal(t, "", rows[0].AvailableQty)
}

func TestParsePurchaseOrders_OptionalPONumber(t *testing.T) {
	in := strings.NewReader(
		"Part Number,Qty Due,Promised Due Date\n" +
			"PART-A,50,2026-04-01\n")

	rows, err := ParsePurchaseOrders(in)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].PONumber)
	assert.Equal(t, "PART-A", rows[0].PartNo)
	assert.Equal(t, "50", rows[0].QtyDue)
}

func TestParseCommitted(t *testing.T) {
	in := strings.NewReader(
		"Component Part Number,Component Qty Required\n" +
			"COMP-1,25\n" +
			"COMP-1,5\n")

	rows, err := ParseCommitted(in)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "COMP-1", rows[1].ComponentPartNo)
	assert.Equal(t, "5", rows[1].QtyRequired)
}

func TestParsePlanned(t *testing.T) {
	in := strings.NewReader(
		"SO Number,Component Part Number,Component Qty Required\n" +
			"9001,COMP-1,4\n")

	rows, err := ParsePlanned(in)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "9001", rows[0].OrderNo)
	assert.Equal(t, "COMP-1", rows[0].ComponentPartNo)
}

func TestParseHours(t *testing.T) {
	in := strings.NewReader("PART_NO,Hours per Unit\nPART-A,0.5\n")

	rows, err := ParseHours(in)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.5", rows[0].HoursPerUnit)
}

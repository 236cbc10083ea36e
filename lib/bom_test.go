package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadPartListCSV(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "bom.csv")
	require.NoError(t, os.WriteFile(src, []byte(
		"Qty,Digi-Key Part Number,Description\n"+
			"4,399-1096-1-ND,CAP CER 0.1UF\n"+
			"1,,DNP\n"+
			"2, 311-10.0KHRCT-ND ,RES 10K\n"+
			"3\n",
	), 0644))

	parts, err := ReadPartList(src)
	require.NoError(t, err)
	require.Equal(t, []string{"399-1096-1-ND", "311-10.0KHRCT-ND"}, parts)

	src = filepath.Join(dir, "plain.csv")
	require.NoError(t, os.WriteFile(src, []byte("399-1096-1-ND\n311-10.0KHRCT-ND,extra\n"), 0644))

	parts, err = ReadPartList(src)
	require.NoError(t, err)
	require.Equal(t, []string{"399-1096-1-ND", "311-10.0KHRCT-ND"}, parts)
}

func TestReadPartListSheet(t *testing.T) {
	src := filepath.Join(t.TempDir(), "bom.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Reference", "Supplier Part Number"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"C1", "399-1096-1-ND"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"R1", "311-10.0KHRCT-ND"}))
	require.NoError(t, f.SaveAs(src))
	require.NoError(t, f.Close())

	parts, err := ReadPartList(src)
	require.NoError(t, err)
	require.Equal(t, []string{"399-1096-1-ND", "311-10.0KHRCT-ND"}, parts)
}

func TestReadPartListUnsupported(t *testing.T) {
	_, err := ReadPartList("bom.txt")
	require.ErrorIs(t, err, ErrUnsupportedBOM)
}

func TestPartColumn(t *testing.T) {
	require.Equal(t, 2, partColumn([]string{"Part Number", "x", " DIGI-KEY PART NUMBER "}))
	require.Equal(t, 0, partColumn([]string{"Part Number"}))
	require.Equal(t, -1, partColumn([]string{"Qty", "Value"}))
}

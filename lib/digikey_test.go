package lib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const partPage = `<html><body>
<table id="product-details">
	<tbody>
		<tr><th>Digi-Key Part Number</th><td> 311-10.0KHRCT-ND </td></tr>
		<tr><th>Manufacturer</th><td><a href="/en/supplier-centers/yageo">YAGEO</a></td></tr>
		<tr><th>Manufacturer Part Number</th><td>RC0603FR-0710KL</td></tr>
		<tr><th>Description</th><td>RES SMD 10K OHM 1% 1/10W 0603</td></tr>
		<tr><td>Report an Error</td></tr>
	</tbody>
</table>
<table id="prod-att-table">
	<tbody>
		<tr id="prod-att-title-row"><th>Categories</th><td></td></tr>
		<tr><th>Categories</th><td><a>Resistors</a></td></tr>
		<tr><td><a>Chip Resistor - Surface Mount</a></td></tr>
		<tr><th>Resistance</th><td>10 kOhms</td></tr>
		<tr><th>Tolerance</th><td>±1%</td></tr>
		<tr><th>Power (Watts)</th><td>0.1W, 1/10W</td></tr>
		<tr><th>Package / Case</th><td>0603 (1608 Metric)</td></tr>
	</tbody>
</table>
</body></html>`

func TestParsePage(t *testing.T) {
	page, err := ParsePage(strings.NewReader(partPage))
	require.NoError(t, err)

	expected := &Page{
		Details: []Row{
			labeled("Digi-Key Part Number", "311-10.0KHRCT-ND"),
			labeled("Manufacturer", "YAGEO"),
			labeled("Manufacturer Part Number", "RC0603FR-0710KL"),
			labeled("Description", "RES SMD 10K OHM 1% 1/10W 0603"),
		},
		Attributes: []Row{
			{Title: true},
			labeled("Categories", "Resistors"),
			continued("Chip Resistor - Surface Mount"),
			labeled("Resistance", "10 kOhms"),
			labeled("Tolerance", "±1%"),
			labeled("Power (Watts)", "0.1W, 1/10W"),
			labeled("Package / Case", "0603 (1608 Metric)"),
		},
	}
	if diff := cmp.Diff(expected, page); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePageMissingTable(t *testing.T) {
	_, err := ParsePage(strings.NewReader(`<html><body><p>No results</p></body></html>`))
	require.ErrorIs(t, err, ErrMissingTable)

	_, err = ParsePage(strings.NewReader(`<table id="product-details"><tr><th>a</th><td>b</td></tr></table>`))
	require.ErrorIs(t, err, ErrMissingTable)
}

func testSupplier(url string) SupplierConfig {
	return SupplierConfig{
		Name:          "Digi-Key",
		BaseURL:       url,
		UserAgent:     "libpop-test/1.0",
		RespectRobots: true,
	}
}

func TestDigiKeyFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", http.NotFound)
	mux.HandleFunc("/products/en", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("keywords") != "311-10.0KHRCT-ND" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") != "libpop-test/1.0" {
			http.Error(w, "bad agent", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(partPage))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewDigiKey(testSupplier(srv.URL))

	page, err := client.Fetch(context.Background(), "311-10.0KHRCT-ND")
	require.NoError(t, err)
	require.Len(t, page.Details, 4)

	attrs := ExtractAttributes(page.Details, page.Attributes, "Digi-Key", DefaultIgnoredFields)
	require.Equal(t, "Resistors - Chip Resistor - Surface Mount", attrs[FieldCategories])
	require.Equal(t, "311-10.0KHRCT-ND", attrs[FieldSupplierPart])

	_, err = client.Fetch(context.Background(), "UNKNOWN-ND")
	require.Error(t, err)
}

func TestDigiKeyRobots(t *testing.T) {
	var requests atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /products/\n"))
	})
	mux.HandleFunc("/products/en", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(partPage))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewDigiKey(testSupplier(srv.URL)).Fetch(context.Background(), "311-10.0KHRCT-ND")
	require.ErrorIs(t, err, ErrDisallowed)
	require.Zero(t, requests.Load())

	cfg := testSupplier(srv.URL)
	cfg.RespectRobots = false
	_, err = NewDigiKey(cfg).Fetch(context.Background(), "311-10.0KHRCT-ND")
	require.NoError(t, err)
	require.EqualValues(t, 1, requests.Load())
}

func TestDigiKeyCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(partPage))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testSupplier(srv.URL)
	cfg.RespectRobots = false
	_, err := NewDigiKey(cfg).Fetch(ctx, "311-10.0KHRCT-ND")
	require.ErrorIs(t, err, context.Canceled)
}

func TestPartURL(t *testing.T) {
	client := NewDigiKey(testSupplier("https://www.digikey.ca/"))
	require.Equal(t, "https://www.digikey.ca/products/en?keywords=311-10.0KHRCT-ND", client.PartURL("311-10.0KHRCT-ND"))
	require.Equal(t, "https://www.digikey.ca/products/en?keywords=A+B%2FC", client.PartURL("A B/C"))
}

func TestRobotsAgent(t *testing.T) {
	require.Equal(t, "libpop", robotsAgent("libpop/0.1 (KiCad library populator)"))
	require.Equal(t, "*", robotsAgent(""))
}

package currency

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func rateServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func erAPIProvider(url string) Provider {
	return Provider{
		Name: "test",
		URL:  url,
		Extract: func(body []byte) (float64, bool) {
			var resp struct {
				Rates map[string]float64 `json:"rates"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return 0, false
			}
			rate, ok := resp.Rates["KGS"]
			return rate, ok && rate > 0
		},
	}
}

func TestRefreshTakesFirstWorkingProvider(t *testing.T) {
	bad := rateServer(t, http.StatusInternalServerError, "")
	good := rateServer(t, http.StatusOK, `{"rates":{"KGS":90}}`)

	c := NewConverter([]Provider{erAPIProvider(bad.URL), erAPIProvider(good.URL)}, "")
	got := c.Refresh(context.Background())
	if got != 90 {
		t.Fatalf("Refresh = %v, хотели 90", got)
	}
	if c.Rate() != 90 {
		t.Errorf("Rate после обновления = %v, хотели 90", c.Rate())
	}
}

func TestRefreshKeepsRateOnTotalFailure(t *testing.T) {
	bad := rateServer(t, http.StatusBadGateway, "")

	c := NewConverter([]Provider{erAPIProvider(bad.URL)}, "")
	got := c.Refresh(context.Background())
	if got != DefaultRate {
		t.Errorf("при полном отказе должен остаться дефолтный курс %v, получили %v", DefaultRate, got)
	}
}

func TestRefreshHonorsTTL(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"rates":{"KGS":91}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewConverter([]Provider{erAPIProvider(srv.URL)}, "")
	c.Refresh(context.Background())
	c.Refresh(context.Background())
	c.Refresh(context.Background())

	if calls != 1 {
		t.Errorf("провайдер должен быть опрошен один раз за TTL, получили %d вызовов", calls)
	}
}

func TestRefreshIgnoresBadJSON(t *testing.T) {
	garbage := rateServer(t, http.StatusOK, "not json at all")
	good := rateServer(t, http.StatusOK, `{"rates":{"KGS":88}}`)

	c := NewConverter([]Provider{erAPIProvider(garbage.URL), erAPIProvider(good.URL)}, "")
	if got := c.Refresh(context.Background()); got != 88 {
		t.Errorf("Refresh = %v, хотели 88 (из второго провайдера)", got)
	}
}

func TestCachePersistsAcrossRestarts(t *testing.T) {
	cacheFile := filepath.Join(t.TempDir(), "rate.json")
	srv := rateServer(t, http.StatusOK, `{"rates":{"KGS":92.5}}`)

	first := NewConverter([]Provider{erAPIProvider(srv.URL)}, cacheFile)
	first.Refresh(context.Background())

	// "Перезапуск": новый конвертер без провайдеров поднимает курс из файла.
	second := NewConverter(nil, cacheFile)
	if second.Rate() != 92.5 {
		t.Errorf("курс не пережил перезапуск: %v", second.Rate())
	}
	if second.LastRefreshed().IsZero() {
		t.Error("timestamp обновления не восстановился из кэша")
	}
	// Свежий кэш — провайдеры не нужны.
	if got := second.Refresh(context.Background()); got != 92.5 {
		t.Errorf("Refresh со свежим кэшем = %v, хотели 92.5", got)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	c := NewConverter(nil, "")
	c.rate = 90

	if got := c.ToUSD(9000); got != 100 {
		t.Errorf("ToUSD(9000) = %v, хотели 100", got)
	}
	if got := c.ToSom(100); got != 9000 {
		t.Errorf("ToSom(100) = %v, хотели 9000", got)
	}

	for _, x := range []float64{1, 99.99, 4500000, 0.07} {
		back := c.ToSom(c.ToUSD(x))
		if math.Abs(back-x) > 1e-9*math.Max(1, x) {
			t.Errorf("ToSom(ToUSD(%v)) = %v, потеря точности", x, back)
		}
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestFormatNoDecimals(t *testing.T) {
	c := NewConverter(nil, "")

	som := c.FormatSom(4500000.7)
	if !strings.HasSuffix(som, "сом") {
		t.Errorf("FormatSom: %q", som)
	}
	if onlyDigits(som) != "4500001" {
		t.Errorf("FormatSom должен округлять до целых: %q", som)
	}

	usd := c.FormatUSD(1000000)
	if usd != "$1,000,000" {
		t.Errorf("FormatUSD(1000000) = %q", usd)
	}
}

func TestLoadCacheIgnoresGarbage(t *testing.T) {
	cacheFile := filepath.Join(t.TempDir(), "rate.json")
	if err := os.WriteFile(cacheFile, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewConverter(nil, cacheFile)
	if c.Rate() != DefaultRate {
		t.Errorf("битый кэш должен игнорироваться, курс = %v", c.Rate())
	}
	if !c.LastRefreshed().IsZero() {
		t.Errorf("timestamp из битого кэша: %v", c.LastRefreshed())
	}
}

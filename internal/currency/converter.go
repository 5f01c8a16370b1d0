// Package currency — сервис конвертации сом/доллар. Курс обновляется не чаще
// раза в сутки из внешних API и переживает перезапуск через файловый кэш
// (аналог localStorage в веб-клиенте).
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultRate — примерный курс сома к доллару (1 USD = 89.5 KGS),
// используется пока ни один провайдер не ответил.
const DefaultRate = 89.5

const refreshInterval = 24 * time.Hour

// Provider — один внешний источник курса.
type Provider struct {
	Name string
	URL  string
	// Extract достает курс KGS из ответа провайдера; (0, false) если
	// ответ не содержит курса.
	Extract func(body []byte) (float64, bool)
}

// DefaultProviders возвращает цепочку провайдеров в порядке приоритета.
// apiKey нужен только последнему (currencyapi.com); с пустым ключом он
// просто не сработает, и это нормально.
func DefaultProviders(apiKey string) []Provider {
	return []Provider{
		{
			Name: "open.er-api.com",
			URL:  "https://open.er-api.com/v6/latest/USD",
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
		},
		{
			Name: "exchangerate-api.com",
			URL:  "https://api.exchangerate-api.com/v4/latest/USD",
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
		},
		{
			Name: "currencyapi.com",
			URL:  fmt.Sprintf("https://api.currencyapi.com/v3/latest?apikey=%s&currencies=KGS&base_currency=USD", apiKey),
			Extract: func(body []byte) (float64, bool) {
				var resp struct {
					Data map[string]struct {
						Value float64 `json:"value"`
					} `json:"data"`
				}
				if err := json.Unmarshal(body, &resp); err != nil {
					return 0, false
				}
				kgs, ok := resp.Data["KGS"]
				return kgs.Value, ok && kgs.Value > 0
			},
		},
	}
}

type cachedRate struct {
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Converter владеет курсом и политикой его обновления. Передается явно всем,
// кому нужна конвертация — никакого глобального состояния.
type Converter struct {
	mu            sync.Mutex
	rate          float64
	lastRefreshed time.Time

	providers []Provider
	cacheFile string
	client    *http.Client

	somPrinter *message.Printer
	usdPrinter *message.Printer
}

func NewConverter(providers []Provider, cacheFile string) *Converter {
	c := &Converter{
		rate:       DefaultRate,
		providers:  providers,
		cacheFile:  cacheFile,
		client:     &http.Client{Timeout: 10 * time.Second},
		somPrinter: message.NewPrinter(language.Russian),
		usdPrinter: message.NewPrinter(language.AmericanEnglish),
	}
	c.loadCache()
	return c
}

// loadCache поднимает сохраненный курс с диска; битый или устаревший кэш
// молча игнорируется.
func (c *Converter) loadCache() {
	if c.cacheFile == "" {
		return
	}
	data, err := os.ReadFile(c.cacheFile)
	if err != nil {
		return
	}
	var cached cachedRate
	if err := json.Unmarshal(data, &cached); err != nil || cached.Rate <= 0 {
		return
	}
	c.rate = cached.Rate
	c.lastRefreshed = cached.UpdatedAt
}

func (c *Converter) saveCache() {
	if c.cacheFile == "" {
		return
	}
	data, err := json.Marshal(cachedRate{Rate: c.rate, UpdatedAt: c.lastRefreshed})
	if err != nil {
		return
	}
	if err := os.WriteFile(c.cacheFile, data, 0644); err != nil {
		log.Printf("[currency] не удалось сохранить курс: %v", err)
	}
}

// Refresh обновляет курс, если кэш старше суток. Провайдеры опрашиваются по
// очереди, берется первый пригодный ответ. При полном отказе остается прежний
// курс — ошибки наружу не отдаются.
func (c *Converter) Refresh(ctx context.Context) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Since(c.lastRefreshed) < refreshInterval {
		return c.rate
	}

	for _, p := range c.providers {
		rate, err := c.fetch(ctx, p)
		if err != nil {
			log.Printf("[currency] %s: %v", p.Name, err)
			continue
		}
		c.rate = rate
		c.lastRefreshed = time.Now()
		c.saveCache()
		log.Printf("[currency] курс обновлен из %s: %.4f", p.Name, rate)
		return c.rate
	}

	log.Printf("[currency] все провайдеры недоступны, остается курс %.4f", c.rate)
	return c.rate
}

func (c *Converter) fetch(ctx context.Context, p Provider) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	rate, ok := p.Extract(body)
	if !ok {
		return 0, fmt.Errorf("ответ не содержит курса KGS")
	}
	return rate, nil
}

// Rate возвращает текущий курс (сомов за 1 доллар).
func (c *Converter) Rate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// LastRefreshed — время последнего успешного обновления (нулевое, если курс
// ни разу не обновлялся).
func (c *Converter) LastRefreshed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefreshed
}

// ToUSD переводит сомы в доллары.
func (c *Converter) ToUSD(som float64) float64 {
	return som / c.Rate()
}

// ToSom переводит доллары в сомы.
func (c *Converter) ToSom(usd float64) float64 {
	return usd * c.Rate()
}

// FormatSom форматирует сумму в сомах: разряды по русской локали, без копеек.
func (c *Converter) FormatSom(amount float64) string {
	return c.somPrinter.Sprintf("%.0f сом", amount)
}

// FormatUSD форматирует сумму в долларах без центов.
func (c *Converter) FormatUSD(amount float64) string {
	return c.usdPrinter.Sprintf("$%.0f", amount)
}

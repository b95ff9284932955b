// Package mealdb клиент внешнего каталога рецептов TheMealDB.
//
// Каждый вызов делает ровно один HTTP запрос, ничего не кэширует и не повторяет.
// Сетевые ошибки, таймауты и не-2xx ответы возвращаются как models.ErrServiceUnavailable,
// неразбираемый ответ как models.ErrUpstreamFormat.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// Criterion критерий поиска в каталоге.
type Criterion string

// Поддерживаемые критерии поиска.
const (
	ByName       Criterion = "name"
	ByIngredient Criterion = "ingredient"
	ByCategory   Criterion = "category"
	ByArea       Criterion = "area"
	ByLetter     Criterion = "letter"
)

// ParseCriterion проверяет критерий из URL.
func ParseCriterion(s string) (Criterion, error) {
	switch c := Criterion(strings.ToLower(s)); c {
	case ByName, ByIngredient, ByCategory, ByArea, ByLetter:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown search criterion %q", models.ErrValidation, s)
}

// Исходы запроса для метрик.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeBadPayload  = "bad_payload"
)

// Recorder получает исход каждого обращения к каталогу.
type Recorder interface {
	CatalogRequest(endpoint, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) CatalogRequest(string, string) {}

// Client клиент каталога. http.Client передаётся снаружи.
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   Recorder
}

// NewClient создаёт клиент каталога с базовым адресом вида https://www.themealdb.com/api/json/v1/1.
func NewClient(baseURL string, httpClient *http.Client, recorder Recorder) *Client {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		recorder:   recorder,
	}
}

// fetch выполняет GET к endpoint (например "lookup.php") и возвращает записи поля "meals".
// Пустой ответ каталога (null или строка вместо массива) даёт пустой срез.
func (c *Client) fetch(ctx context.Context, endpoint string, query url.Values) ([]map[string]any, error) {
	const op = "mealdb.fetch"
	metric := strings.TrimSuffix(endpoint, ".php")

	u := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.CatalogRequest(metric, OutcomeUnavailable)
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrServiceUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.recorder.CatalogRequest(metric, OutcomeUnavailable)
		return nil, fmt.Errorf("%s: %w: unexpected status %s", op, models.ErrServiceUnavailable, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recorder.CatalogRequest(metric, OutcomeUnavailable)
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrServiceUnavailable, err)
	}

	meals, err := decodeMeals(body)
	if err != nil {
		c.recorder.CatalogRequest(metric, OutcomeBadPayload)
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrUpstreamFormat, err)
	}
	c.recorder.CatalogRequest(metric, OutcomeOK)
	return meals, nil
}

func decodeMeals(body []byte) ([]map[string]any, error) {
	var envelope struct {
		Meals json.RawMessage `json:"meals"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(string(envelope.Meals))
	if raw == "" || raw == "null" || strings.HasPrefix(raw, `"`) {
		return nil, nil
	}
	var meals []map[string]any
	if err := json.Unmarshal(envelope.Meals, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (c *Client) recipes(ctx context.Context, endpoint string, query url.Values) ([]models.Recipe, error) {
	meals, err := c.fetch(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	out := make([]models.Recipe, 0, len(meals))
	for _, m := range meals {
		r, err := Normalize(m)
		if err != nil {
			return nil, fmt.Errorf("mealdb.recipes: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Search ищет рецепты по критерию. Поиск по имени и по первой букве возвращает
// полные записи, фильтры по ингредиенту, категории и кухне только ID, Name и Image.
func (c *Client) Search(ctx context.Context, criterion Criterion, value string) ([]models.Recipe, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("mealdb.Search: %w: empty search term", models.ErrValidation)
	}
	switch criterion {
	case ByName:
		return c.recipes(ctx, "search.php", url.Values{"s": {value}})
	case ByIngredient:
		return c.recipes(ctx, "filter.php", url.Values{"i": {strings.ReplaceAll(value, " ", "_")}})
	case ByCategory:
		return c.recipes(ctx, "filter.php", url.Values{"c": {value}})
	case ByArea:
		return c.recipes(ctx, "filter.php", url.Values{"a": {value}})
	case ByLetter:
		letter, size := utf8.DecodeRuneInString(value)
		if size != len(value) || !unicode.IsLetter(letter) {
			return nil, fmt.Errorf("mealdb.Search: %w: letter must be a single character, got %q", models.ErrValidation, value)
		}
		return c.recipes(ctx, "search.php", url.Values{"f": {strings.ToLower(value)}})
	default:
		return nil, fmt.Errorf("mealdb.Search: %w: unknown search criterion %q", models.ErrValidation, criterion)
	}
}

func (c *Client) single(ctx context.Context, op, endpoint string, query url.Values) (*models.Recipe, error) {
	list, err := c.recipes(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return &list[0], nil
}

// Random возвращает случайный рецепт.
func (c *Client) Random(ctx context.Context) (*models.Recipe, error) {
	return c.single(ctx, "mealdb.Random", "random.php", nil)
}

// Lookup возвращает полный рецепт по ID каталога.
func (c *Client) Lookup(ctx context.Context, id string) (*models.Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("mealdb.Lookup: %w: empty recipe id", models.ErrValidation)
	}
	return c.single(ctx, "mealdb.Lookup", "lookup.php", url.Values{"i": {id}})
}

func (c *Client) names(ctx context.Context, query url.Values, field string) ([]string, error) {
	meals, err := c.fetch(ctx, "list.php", query)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		if name := str(m, field); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

// ListCategories возвращает названия категорий.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	return c.names(ctx, url.Values{"c": {"list"}}, "strCategory")
}

// ListAreas возвращает названия кухонь.
func (c *Client) ListAreas(ctx context.Context) ([]string, error) {
	return c.names(ctx, url.Values{"a": {"list"}}, "strArea")
}

// ListIngredients возвращает названия ингредиентов.
func (c *Client) ListIngredients(ctx context.Context) ([]string, error) {
	return c.names(ctx, url.Values{"i": {"list"}}, "strIngredient")
}

package mealdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

const arrabiata = `{"meals":[{
	"idMeal":"52771","strMeal":"Spicy Arrabiata Penne","strCategory":"Vegetarian","strArea":"Italian",
	"strInstructions":"Bring a large pot of water to a boil.","strMealThumb":"https://img/arrabiata.jpg",
	"strTags":"Pasta,Curry","strYoutube":"https://youtube/abc",
	"strIngredient1":"penne rigate","strMeasure1":"1 pound",
	"strIngredient2":"olive oil","strMeasure2":"1/4 cup",
	"strIngredient3":"","strMeasure3":"",
	"strIngredient4":"garlic","strMeasure4":"3 cloves",
	"strIngredient5":null,"strMeasure5":null
}]}`

type recorderStub struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorderStub) CatalogRequest(endpoint, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, endpoint+":"+outcome)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recorderStub) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rec := &recorderStub{}
	return NewClient(srv.URL+"/", &http.Client{Timeout: 2 * time.Second}, rec), rec
}

func TestClient_Lookup(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup.php", r.URL.Path)
		assert.Equal(t, "52771", r.URL.Query().Get("i"))
		_, _ = w.Write([]byte(arrabiata))
	})

	recipe, err := client.Lookup(context.Background(), "52771")
	require.NoError(t, err)

	assert.Equal(t, "52771", recipe.ID)
	assert.Equal(t, "Spicy Arrabiata Penne", recipe.Name)
	assert.Equal(t, "Vegetarian", recipe.Category)
	assert.Equal(t, "Italian", recipe.Area)
	assert.Equal(t, "Pasta,Curry", recipe.Tags)
	assert.Equal(t, []models.Ingredient{
		{Name: "penne rigate", Measure: "1 pound"},
		{Name: "olive oil", Measure: "1/4 cup"},
		{Name: "garlic", Measure: "3 cloves"},
	}, recipe.Ingredients)
	assert.Equal(t, []string{"lookup:ok"}, rec.calls)
}

func TestClient_NotFoundOnEmptyMeals(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "null meals", body: `{"meals":null}`},
		{name: "missing meals", body: `{}`},
		{name: "string meals", body: `{"meals":"Invalid ID"}`},
		{name: "empty array", body: `{"meals":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			recipe, err := client.Lookup(context.Background(), "1")
			assert.Nil(t, recipe)
			assert.True(t, errors.Is(err, models.ErrNotFound))

			recipe, err = client.Random(context.Background())
			assert.Nil(t, recipe)
			assert.True(t, errors.Is(err, models.ErrNotFound))
		})
	}
}

func TestClient_Search(t *testing.T) {
	tests := []struct {
		name      string
		criterion Criterion
		value     string
		wantPath  string
		wantKey   string
		wantValue string
	}{
		{name: "by name", criterion: ByName, value: "Arrabiata", wantPath: "/search.php", wantKey: "s", wantValue: "Arrabiata"},
		{name: "by ingredient", criterion: ByIngredient, value: "chicken breast", wantPath: "/filter.php", wantKey: "i", wantValue: "chicken_breast"},
		{name: "by category", criterion: ByCategory, value: "Seafood", wantPath: "/filter.php", wantKey: "c", wantValue: "Seafood"},
		{name: "by area", criterion: ByArea, value: "Canadian", wantPath: "/filter.php", wantKey: "a", wantValue: "Canadian"},
		{name: "by first letter", criterion: ByLetter, value: "B", wantPath: "/search.php", wantKey: "f", wantValue: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, tt.wantValue, r.URL.Query().Get(tt.wantKey))
				_, _ = w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"A","strMealThumb":"img"},{"idMeal":"2","strMeal":"B"}]}`))
			})

			got, err := client.Search(context.Background(), tt.criterion, tt.value)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "1", got[0].ID)
			assert.Equal(t, "img", got[0].Image)
			assert.Equal(t, "2", got[1].ID)
		})
	}
}

func TestClient_SearchEmptyResult(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	})

	got, err := client.Search(context.Background(), ByIngredient, "unobtainium")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_SearchValidation(t *testing.T) {
	client := NewClient("http://unused", http.DefaultClient, nil)

	_, err := client.Search(context.Background(), ByName, "  ")
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = client.Search(context.Background(), Criterion("color"), "red")
	assert.True(t, errors.Is(err, models.ErrValidation))

	for _, bad := range []string{"ab", "7", "?"} {
		_, err = client.Search(context.Background(), ByLetter, bad)
		assert.True(t, errors.Is(err, models.ErrValidation), "letter %q", bad)
	}
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
		outcome string
	}{
		{
			name: "upstream 500",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: models.ErrServiceUnavailable,
			outcome: "random:unavailable",
		},
		{
			name: "upstream 404",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr: models.ErrServiceUnavailable,
			outcome: "random:unavailable",
		},
		{
			name: "html instead of json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>maintenance</html>"))
			},
			wantErr: models.ErrUpstreamFormat,
			outcome: "random:bad_payload",
		},
		{
			name: "meals of wrong shape",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"meals":[1,2,3]}`))
			},
			wantErr: models.ErrUpstreamFormat,
			outcome: "random:bad_payload",
		},
		{
			name: "meal without id",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"meals":[{"strMeal":"Nameless"}]}`))
			},
			wantErr: models.ErrUpstreamFormat,
			outcome: "random:ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestClient(t, tt.handler)

			recipe, err := client.Random(context.Background())
			assert.Nil(t, recipe)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, []string{tt.outcome}, rec.calls)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(arrabiata))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &http.Client{Timeout: 20 * time.Millisecond}, nil)

	_, err := client.Random(context.Background())
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", &http.Client{Timeout: time.Second}, nil)

	_, err := client.ListCategories(context.Background())
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestClient_Lists(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list.php", r.URL.Path)
		q := r.URL.Query()
		switch {
		case q.Get("c") == "list":
			_, _ = w.Write([]byte(`{"meals":[{"strCategory":"Beef"},{"strCategory":"Dessert"}]}`))
		case q.Get("a") == "list":
			_, _ = w.Write([]byte(`{"meals":[{"strArea":"British"},{"strArea":""}]}`))
		case q.Get("i") == "list":
			_, _ = w.Write([]byte(`{"meals":[{"idIngredient":"1","strIngredient":"Chicken"}]}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	ctx := context.Background()

	categories, err := client.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beef", "Dessert"}, categories)

	areas, err := client.ListAreas(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"British"}, areas)

	ingredients, err := client.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken"}, ingredients)
}

func TestParseCriterion(t *testing.T) {
	c, err := ParseCriterion("Ingredient")
	require.NoError(t, err)
	assert.Equal(t, ByIngredient, c)

	c, err = ParseCriterion("letter")
	require.NoError(t, err)
	assert.Equal(t, ByLetter, c)

	_, err = ParseCriterion("colour")
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestHasIngredient(t *testing.T) {
	r := &models.Recipe{Ingredients: []models.Ingredient{{Name: "Chicken Breast"}, {Name: "Salt"}}}

	assert.True(t, HasIngredient(r, "chicken"))
	assert.True(t, HasIngredient(r, " SALT "))
	assert.True(t, HasIngredient(r, "chicken_breast"))
	assert.False(t, HasIngredient(r, "beef"))
}

package spoonacular

import (
	"html"
	"regexp"
	"strings"

	"github.com/pantryrank/backend/internal/domain"
)

// Wire types for the subset of the Spoonacular API we consume

type searchResponse struct {
	Results      []apiRecipe `json:"results"`
	Offset       int         `json:"offset"`
	Number       int         `json:"number"`
	TotalResults int         `json:"totalResults"`
}

type apiRecipe struct {
	ID                   int              `json:"id"`
	Title                string           `json:"title"`
	Image                string           `json:"image"`
	Summary              string           `json:"summary"`
	ReadyInMinutes       int              `json:"readyInMinutes"`
	Servings             int              `json:"servings"`
	SourceURL            string           `json:"sourceUrl"`
	SpoonacularSourceURL string           `json:"spoonacularSourceUrl"`
	Vegetarian           bool             `json:"vegetarian"`
	Vegan                bool             `json:"vegan"`
	GlutenFree           bool             `json:"glutenFree"`
	DairyFree            bool             `json:"dairyFree"`
	Whole30              bool             `json:"whole30"`
	Diets                []string         `json:"diets"`
	HealthScore          float64          `json:"healthScore"`
	PricePerServing      float64          `json:"pricePerServing"`
	Cuisines             []string         `json:"cuisines"`
	DishTypes            []string         `json:"dishTypes"`
	ExtendedIngredients  []apiIngredient  `json:"extendedIngredients"`
	AnalyzedInstructions []apiInstruction `json:"analyzedInstructions"`
}

type apiIngredient struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Original     string  `json:"original"`
	OriginalName string  `json:"originalName"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	Aisle        string  `json:"aisle"`
	Consistency  string  `json:"consistency"`
}

type apiInstruction struct {
	Name  string `json:"name"`
	Steps []struct {
		Number int    `json:"number"`
		Step   string `json:"step"`
	} `json:"steps"`
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// cleanHTML strips tags and unescapes entities from API summaries
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(htmlTagRegex.ReplaceAllString(s, "")))
}

func mapSearchResponse(resp *searchResponse) *domain.RecipeSearchResponse {
	recipes := make([]domain.Recipe, 0, len(resp.Results))
	for i := range resp.Results {
		recipes = append(recipes, mapRecipe(&resp.Results[i]))
	}

	total := resp.TotalResults
	if total == 0 {
		total = len(recipes)
	}
	number := resp.Number
	if number == 0 {
		number = len(recipes)
	}

	return &domain.RecipeSearchResponse{
		Recipes:      recipes,
		TotalResults: total,
		Number:       number,
		Offset:       resp.Offset,
	}
}

// mapRecipe converts an API recipe to our domain Recipe
func mapRecipe(r *apiRecipe) domain.Recipe {
	title := r.Title
	if title == "" {
		title = "Unknown Recipe"
	}
	servings := r.Servings
	if servings == 0 {
		servings = 1
	}

	recipe := domain.Recipe{
		ID:              r.ID,
		Title:           title,
		Image:           r.Image,
		Summary:         cleanHTML(r.Summary),
		ReadyInMinutes:  r.ReadyInMinutes,
		Servings:        servings,
		SourceURL:       r.SourceURL,
		SpoonacularURL:  r.SpoonacularSourceURL,
		Vegetarian:      r.Vegetarian,
		Vegan:           r.Vegan,
		GlutenFree:      r.GlutenFree,
		DairyFree:       r.DairyFree,
		Whole30:         r.Whole30 || hasDiet(r.Diets, "whole 30"),
		HealthScore:     r.HealthScore,
		PricePerServing: r.PricePerServing,
		Cuisines:        r.Cuisines,
		DishTypes:       r.DishTypes,
		Ingredients:     make([]domain.RecipeIngredient, 0, len(r.ExtendedIngredients)),
	}

	for _, ing := range r.ExtendedIngredients {
		recipe.Ingredients = append(recipe.Ingredients, domain.RecipeIngredient{
			ID:           ing.ID,
			Name:         ing.Name,
			Original:     ing.Original,
			OriginalName: ing.OriginalName,
			Amount:       ing.Amount,
			Unit:         ing.Unit,
			Aisle:        ing.Aisle,
			Consistency:  ing.Consistency,
		})
	}

	for _, group := range r.AnalyzedInstructions {
		for _, step := range group.Steps {
			recipe.Instructions = append(recipe.Instructions, domain.Instruction{
				Number: step.Number,
				Step:   step.Step,
			})
		}
	}

	return recipe
}

func hasDiet(diets []string, want string) bool {
	for _, d := range diets {
		if strings.EqualFold(strings.TrimSpace(d), want) {
			return true
		}
	}
	return false
}

package main

import (
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/pantrybase/cookbook/config"
	"github.com/pantrybase/cookbook/internal/database"
	"github.com/pantrybase/cookbook/internal/models"
)

type seedIngredient struct {
	name string
	unit string
}

type seedRecipe struct {
	name         string
	description  string
	instructions string
	prepTime     int
	cookTime     int
	servings     int
	ingredients  map[string]float64
}

var ingredients = []seedIngredient{
	{"flour", "g"},
	{"sugar", "g"},
	{"butter", "g"},
	{"milk", "ml"},
	{"egg", "piece"},
	{"salt", "pinch"},
	{"baking powder", "tsp"},
	{"olive oil", "tbsp"},
	{"rice", "cup"},
	{"onion", "piece"},
	{"garlic", "piece"},
	{"tomato", "piece"},
}

var recipes = []seedRecipe{
	{
		name:         "Pancakes",
		description:  "Fluffy breakfast pancakes",
		instructions: "Whisk the dry ingredients.\nBeat in milk and eggs.\nFry ladlefuls in butter until golden on both sides.",
		prepTime:     10,
		cookTime:     15,
		servings:     4,
		ingredients: map[string]float64{
			"flour":         200,
			"milk":          300,
			"egg":           2,
			"sugar":         25,
			"baking powder": 2,
			"salt":          1,
		},
	},
	{
		name:         "Tomato Rice",
		description:  "One-pot rice with tomato and garlic",
		instructions: "Soften onion and garlic in olive oil.\nStir in rice and chopped tomato.\nAdd water, cover, and simmer until tender.",
		prepTime:     10,
		cookTime:     25,
		servings:     2,
		ingredients: map[string]float64{
			"rice":      1,
			"tomato":    3,
			"onion":     1,
			"garlic":    2,
			"olive oil": 2,
			"salt":      1,
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	byName := make(map[string]int64, len(ingredients))
	for _, seed := range ingredients {
		var existing models.Ingredient
		err := db.Where("LOWER(name) = ?", strings.ToLower(seed.name)).First(&existing).Error
		if err == nil {
			byName[seed.name] = existing.ID
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up ingredient %s: %v", seed.name, err)
		}

		ingredient := models.Ingredient{Name: seed.name, Unit: seed.unit}
		if err := db.Create(&ingredient).Error; err != nil {
			log.Fatalf("Failed to seed ingredient %s: %v", seed.name, err)
		}
		byName[seed.name] = ingredient.ID
		log.Printf("Seeded ingredient: %s", seed.name)
	}

	for _, seed := range recipes {
		var count int64
		if err := db.Model(&models.Recipe{}).Where("name = ?", seed.name).Count(&count).Error; err != nil {
			log.Fatalf("Failed to look up recipe %s: %v", seed.name, err)
		}
		if count > 0 {
			continue
		}

		recipe := models.Recipe{
			Name:         seed.name,
			Description:  seed.description,
			Instructions: seed.instructions,
			PrepTime:     seed.prepTime,
			CookTime:     seed.cookTime,
			Servings:     seed.servings,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&recipe).Error; err != nil {
				return err
			}
			for name, quantity := range seed.ingredients {
				link := models.RecipeIngredient{
					RecipeID:     recipe.ID,
					IngredientID: byName[name],
					Quantity:     quantity,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to seed recipe %s: %v", seed.name, err)
		}
		log.Printf("Seeded recipe: %s", seed.name)
	}

	log.Printf("Seeding complete")
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"generative-pets/internal/config"
	"generative-pets/internal/db"
	"generative-pets/internal/domain"
	"generative-pets/internal/repository"
)

// Catálogo inicial de animales adoptables.
var seedAnimals = []domain.AnimalProfile{
	{
		Species: "dog", Name: "Bella", Breed: "Labrador Retriever", AgeMonths: 24,
		Sex: "female", Size: "large", GoodWithKids: true, GoodWithPets: true,
		Hypoallergenic: false, EnergyLevel: "high",
		Description: "Joueuse, aime les balades quotidiennes.",
		ImageURL:    "https://placehold.co/400x300?text=Bella",
	},
	{
		Species: "dog", Name: "Milo", Breed: "Poodle", AgeMonths: 36,
		Sex: "male", Size: "medium", GoodWithKids: true, GoodWithPets: true,
		Hypoallergenic: true, EnergyLevel: "medium",
		Description: "Très affectueux, facile à éduquer.",
		ImageURL:    "https://placehold.co/400x300?text=Milo",
	},
	{
		Species: "cat", Name: "Luna", Breed: "Siberian", AgeMonths: 18,
		Sex: "female", Size: "small", GoodWithKids: true, GoodWithPets: false,
		Hypoallergenic: true, EnergyLevel: "medium",
		Description: "Calme à la maison, aime jouer.",
		ImageURL:    "https://placehold.co/400x300?text=Luna",
	},
	{
		Species: "cat", Name: "Simba", Breed: "European Shorthair", AgeMonths: 30,
		Sex: "male", Size: "small", GoodWithKids: true, GoodWithPets: true,
		Hypoallergenic: false, EnergyLevel: "low",
		Description: "Indépendant, idéal pour appartement.",
		ImageURL:    "https://placehold.co/400x300?text=Simba",
	},
	{
		Species: "rabbit", Name: "Coco", Breed: "Lop", AgeMonths: 12,
		Sex: "female", Size: "small", GoodWithKids: true, GoodWithPets: true,
		Hypoallergenic: true, EnergyLevel: "low",
		Description: "Très doux, aime être brossé.",
		ImageURL:    "https://placehold.co/400x300?text=Coco",
	},
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal(err)
	}

	animalRepo := repository.NewPgAnimalRepository(pool)

	// Se parte de un catálogo limpio en cada siembra.
	if err := animalRepo.DeleteAll(ctx); err != nil {
		log.Fatal(err)
	}

	for _, a := range seedAnimals {
		a.ID = uuid.NewString()
		a.CreatedAt = time.Now().UTC()
		if err := animalRepo.Create(ctx, a); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("seed done: %d animals", len(seedAnimals))
}

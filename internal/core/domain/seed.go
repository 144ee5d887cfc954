package domain

// SeedUser is a seed account before its password is hashed.
type SeedUser struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// DefaultAdminEmail identifies the seed admin, which can never be deleted.
const DefaultAdminEmail = "boutabia@gmail.com"

// SeedUsers returns the accounts inserted by the seed routine.
func SeedUsers() []SeedUser {
	return []SeedUser{
		{Name: "boutabia", Email: DefaultAdminEmail, Password: "123456", IsAdmin: true},
		{Name: "SOUFIANE", Email: "soufiane@gmail.com", Password: "123456", IsAdmin: false},
	}
}

// SeedProducts returns the catalog inserted by the seed routine.
func SeedProducts() []Product {
	return []Product{
		{
			Name:         "DIORHOMME",
			Slug:         "diorhomme",
			Category:     "Homme",
			Image:        "/images/DIORHOMME.jpg",
			Price:        120,
			CountInStock: 10,
			Brand:        "Dior",
			Rating:       4.5,
			NumReviews:   10,
			Description:  "L alliance parfaite du jasmin et de la rose, capturée dans le parfum Duo des Fleurs de Dior",
		},
		{
			Name:         "DUO DES FLEURS",
			Slug:         "duo-des-fleurs",
			Category:     "Femme",
			Image:        "/images/duo-des-fleurs.jpg",
			Price:        250,
			CountInStock: 0,
			Brand:        "DIOR",
			Rating:       4.0,
			NumReviews:   10,
			Description:  "DIOR présente Jardin Bohème, un parfum envoûtant qui capture la liberté de la nature. Des notes florales et boisées créent une expérience olfactive unique",
		},
		{
			Name:         "TOMFORD",
			Slug:         "tomford",
			Category:     "Homme",
			Image:        "/images/tomford.jpg",
			Price:        25,
			CountInStock: 15,
			Brand:        "Gucci",
			Rating:       4.5,
			NumReviews:   14,
			Description:  "TOMFORD, le parfum par Gucci, incarne l essence de l élégance moderne. Une fragrance florale et sophistiquée qui célèbre la féminité sous toutes ses facettes.",
		},
		{
			Name:         "JULIA",
			Slug:         "julia",
			Category:     "Femme",
			Image:        "/images/julia.jpg",
			Price:        65,
			CountInStock: 5,
			Brand:        "Dior",
			Rating:       4.5,
			NumReviews:   10,
			Description:  "JULIA, le parfum emblématique de Dior, captivant et mystérieux. Une fragrance audacieuse mêlant des notes envoûtantes de fleurs, d épices et de fruits.",
		},
		{
			Name:         "CREED",
			Slug:         "creed",
			Category:     "Homme",
			Image:        "/images/creed.jpg",
			Price:        65,
			CountInStock: 5,
			Brand:        "Dior",
			Rating:       4.5,
			NumReviews:   10,
			Description:  "CREED, le parfum emblématique de Dior, captivant et mystérieux. Une fragrance audacieuse mêlant des notes envoûtantes de fleurs, d épices et de fruits.",
		},
		{
			Name:         "VALERIA BOLTNEVA",
			Slug:         "valeria-boltneva",
			Category:     "Femme",
			Image:        "/images/DAISY.jpg",
			Price:        65,
			CountInStock: 5,
			Brand:        "Dior",
			Rating:       4.5,
			NumReviews:   10,
			Description:  "VALERIA, le parfum emblématique de Dior, captivant et mystérieux. Une fragrance audacieuse mêlant des notes envoûtantes de fleurs, d épices et de fruits.",
		},
	}
}

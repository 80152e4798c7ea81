package domain

// MenuItem is a single dish on the truck's menu.
type MenuItem struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Price       float64 `json:"price" bson:"price"`
	Category    string  `json:"category" bson:"category"`
	Veg         bool    `json:"veg" bson:"veg"`
	PrepTime    int     `json:"prep_time" bson:"prep_time"` // minutes
	Available   bool    `json:"available" bson:"available"`
	ImageURL    string  `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
}

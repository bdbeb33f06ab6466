package model

import "time"

// Item is one row of a user's grocery list. The descriptive fields are
// nullable so a merge can blank them out when the incoming payload omits
// them.
type Item struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	DateAdded   time.Time `json:"-"`

	Brands        *string `json:"brands"`
	ThumbURL      *string `json:"thumb_url"`
	Ingredients   *string `json:"ingredients"`
	Allergens     *string `json:"allergens"`
	Labels        *string `json:"labels"`
	ServingSize   *string `json:"serving_size"`
	Categories    *string `json:"categories"`
	Calories      *string `json:"calories"`
	Fat           *string `json:"fat"`
	SaturatedFat  *string `json:"saturated_fat"`
	Carbohydrates *string `json:"carbohydrates"`
	Sugars        *string `json:"sugars"`
	Protein       *string `json:"protein"`
	Salt          *string `json:"salt"`
}

// ItemFields carries the caller-supplied fields for an add-or-merge. The
// quantity here is the increment, not the final value.
type ItemFields struct {
	ProductName string
	Quantity    int64

	Brands        *string
	ThumbURL      *string
	Ingredients   *string
	Allergens     *string
	Labels        *string
	ServingSize   *string
	Categories    *string
	Calories      *string
	Fat           *string
	SaturatedFat  *string
	Carbohydrates *string
	Sugars        *string
	Protein       *string
	Salt          *string
}

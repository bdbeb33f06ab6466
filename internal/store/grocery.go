package store

import (
	"database/sql"
	"fmt"

	"larder/internal/model"
)

type GroceryStore struct {
	db *sql.DB
}

func NewGroceryStore(db *sql.DB) *GroceryStore {
	return &GroceryStore{db: db}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var item model.Item
	err := scanner.Scan(
		&item.ID, &item.UserID, &item.ProductName, &item.Quantity, &item.DateAdded,
		&item.Brands, &item.ThumbURL, &item.Ingredients, &item.Allergens,
		&item.Labels, &item.ServingSize, &item.Categories, &item.Calories,
		&item.Fat, &item.SaturatedFat, &item.Carbohydrates, &item.Sugars,
		&item.Protein, &item.Salt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

const itemCols = `id, user_id, product_name, quantity, date_added,
	brands, thumb_url, ingredients, allergens, labels, serving_size,
	categories, calories, fat, saturated_fat, carbohydrates, sugars,
	protein, salt`

// AddOrMerge folds the submitted fields into an existing row with the same
// owner and product name, or inserts a new row when there is none. A match
// increments quantity by f.Quantity and overwrites every descriptive field,
// nils included. The whole operation runs in one transaction; the returned
// bool reports whether a new row was created.
//
// The match lookup and the write are not atomic with respect to other
// connections, so two concurrent adds of the same product can still produce
// duplicate rows.
func (s *GroceryStore) AddOrMerge(userID int64, f model.ItemFields) (*model.Item, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(
		`SELECT `+itemCols+` FROM grocery_items WHERE user_id = ? AND product_name = ?`,
		userID, f.ProductName,
	)
	existing, err := scanItem(row)
	if err != nil && err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("lookup item: %w", err)
	}

	var id int64
	created := existing == nil

	if created {
		result, err := tx.Exec(
			`INSERT INTO grocery_items (
				user_id, product_name, quantity,
				brands, thumb_url, ingredients, allergens, labels, serving_size,
				categories, calories, fat, saturated_fat, carbohydrates, sugars,
				protein, salt
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, f.ProductName, f.Quantity,
			f.Brands, f.ThumbURL, f.Ingredients, f.Allergens, f.Labels, f.ServingSize,
			f.Categories, f.Calories, f.Fat, f.SaturatedFat, f.Carbohydrates, f.Sugars,
			f.Protein, f.Salt,
		)
		if err != nil {
			return nil, false, fmt.Errorf("insert item: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, false, fmt.Errorf("last insert id: %w", err)
		}
	} else {
		id = existing.ID
		_, err := tx.Exec(
			`UPDATE grocery_items SET
				quantity = quantity + ?,
				brands = ?, thumb_url = ?, ingredients = ?, allergens = ?,
				labels = ?, serving_size = ?, categories = ?, calories = ?,
				fat = ?, saturated_fat = ?, carbohydrates = ?, sugars = ?,
				protein = ?, salt = ?
			WHERE id = ?`,
			f.Quantity,
			f.Brands, f.ThumbURL, f.Ingredients, f.Allergens,
			f.Labels, f.ServingSize, f.Categories, f.Calories,
			f.Fat, f.SaturatedFat, f.Carbohydrates, f.Sugars,
			f.Protein, f.Salt,
			id,
		)
		if err != nil {
			return nil, false, fmt.Errorf("merge item: %w", err)
		}
	}

	item, err := scanItem(tx.QueryRow(`SELECT `+itemCols+` FROM grocery_items WHERE id = ?`, id))
	if err != nil {
		return nil, false, fmt.Errorf("reload item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}
	return item, created, nil
}

func (s *GroceryStore) ListByUser(userID int64) ([]model.Item, error) {
	rows, err := s.db.Query(`SELECT `+itemCols+` FROM grocery_items WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *GroceryStore) GetByID(userID, itemID int64) (*model.Item, error) {
	row := s.db.QueryRow(
		`SELECT `+itemCols+` FROM grocery_items WHERE id = ? AND user_id = ?`,
		itemID, userID,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// UpdateQuantity overwrites the quantity of an item owned by userID. The
// returned bool is false when no such item exists for that owner.
func (s *GroceryStore) UpdateQuantity(userID, itemID, quantity int64) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE grocery_items SET quantity = ? WHERE id = ? AND user_id = ?`,
		quantity, itemID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("update quantity: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// Delete removes an item owned by userID. The returned bool is false when no
// such item exists for that owner.
func (s *GroceryStore) Delete(userID, itemID int64) (bool, error) {
	result, err := s.db.Exec(
		`DELETE FROM grocery_items WHERE id = ? AND user_id = ?`,
		itemID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

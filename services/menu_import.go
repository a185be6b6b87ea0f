package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

// Import columns, in order: category_id, name, description, price, is_available.
const importMinColumns = 4

type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Created []models.MenuItem `json:"created"`
	Skipped []ImportRowError  `json:"skipped"`
}

// ImportItems reads menu items from the first sheet of an Excel workbook.
// The header row is skipped, as is every invalid row; valid rows are
// inserted together.
func (s *MenuService) ImportItems(ctx context.Context, actor Actor, restaurantID uint, r io.Reader) (*ImportResult, error) {
	if _, err := s.managedRestaurant(ctx, actor, restaurantID, "create items"); err != nil {
		return nil, err
	}

	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, utils.Invalid("Failed to parse Excel file")
	}
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil || len(rows) < 2 {
		return nil, utils.Invalid("Excel must have at least one row of data")
	}

	cats, err := s.menu.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	ownCategory := make(map[uint]bool, len(cats))
	for _, c := range cats {
		ownCategory[c.ID] = true
	}

	result := &ImportResult{Created: []models.MenuItem{}, Skipped: []ImportRowError{}}
	var items []models.MenuItem
	for i, row := range rows[1:] {
		rowNum := i + 2
		item, reason := parseImportRow(row, restaurantID, ownCategory)
		if reason != "" {
			result.Skipped = append(result.Skipped, ImportRowError{Row: rowNum, Reason: reason})
			continue
		}
		items = append(items, *item)
	}
	if len(items) == 0 {
		return result, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.menu.WithTx(tx)
		for i := range items {
			if err := repo.CreateItem(ctx, &items[i]); err != nil {
				return err
			}
		}
		return s.auditAdmin(ctx, tx, actor, models.ActionManageMenuItem, models.TargetMenuItem, items[0].ID,
			fmt.Sprintf("imported %d items into restaurant %d", len(items), restaurantID))
	})
	if err != nil {
		return nil, err
	}
	result.Created = items
	utils.InfoLogger.WithFields(map[string]interface{}{
		"restaurant_id": restaurantID,
		"created":       len(items),
		"skipped":       len(result.Skipped),
	}).Info("menu import finished")
	return result, nil
}

func parseImportRow(row []string, restaurantID uint, ownCategory map[uint]bool) (*models.MenuItem, string) {
	if len(row) < importMinColumns {
		return nil, "incomplete row"
	}
	categoryID, err := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 32)
	if err != nil {
		return nil, "invalid category id"
	}
	if !ownCategory[uint(categoryID)] {
		return nil, "category does not belong to this restaurant"
	}
	name := strings.TrimSpace(row[1])
	if name == "" {
		return nil, "missing name"
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil || price < 0 {
		return nil, "invalid price"
	}

	available := true
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		available, err = strconv.ParseBool(strings.ToLower(strings.TrimSpace(row[4])))
		if err != nil {
			return nil, "invalid is_available"
		}
	}
	return &models.MenuItem{
		RestaurantID: restaurantID,
		CategoryID:   uint(categoryID),
		Name:         name,
		Description:  strings.TrimSpace(row[2]),
		Price:        price,
		IsAvailable:  available,
	}, ""
}

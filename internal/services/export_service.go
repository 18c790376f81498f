package services

import (
	"bytes"
	"fmt"

	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ExportService renders a wishlist as a spreadsheet. The export is
// subject to the same visibility and reservation projection rules as the
// JSON view; it never leaks more than the viewer could see online.
type ExportService struct {
	wishlists *WishlistService
	items     *ItemService
}

func NewExportService(wishlists *WishlistService, items *ItemService) *ExportService {
	return &ExportService{
		wishlists: wishlists,
		items:     items,
	}
}

// ExportWishlist produces an xlsx workbook with one row per item.
func (s *ExportService) ExportWishlist(viewerID, wishlistID uint) ([]byte, string, error) {
	wishlist, err := s.wishlists.GetVisible(viewerID, wishlistID)
	if err != nil {
		return nil, "", err
	}

	views, err := s.items.ListForViewer(wishlist, viewerID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Wishlist"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to prepare workbook")
	}

	headers := []string{"Name", "Description", "Price", "Currency", "Shop Link", "Status"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, view := range views {
		values := []interface{}{
			view.Name,
			view.Description,
			view.Price,
			fmt.Sprintf("%s %s", view.Currency, models.CurrencySymbol(view.Currency)),
			view.ShopLink,
			view.Status,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to write workbook")
	}

	filename := fmt.Sprintf("wishlist-%d.xlsx", wishlist.ID)
	return buf.Bytes(), filename, nil
}

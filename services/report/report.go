// Package report builds sales reports over monetarily realized bookings and
// orders, splitting the platform fee from the seller's net.
package report

import (
	"math"

	"tripmart/config"
	bookingRepo "tripmart/database/repository/booking"
	catalogRepo "tripmart/database/repository/catalog"
	orderRepo "tripmart/database/repository/order"
	"tripmart/models"
	"tripmart/utils"

	"go.uber.org/zap"
)

// ReportService produces per-owner and admin-wide sales reports.
type ReportService interface {
	// AdvertiserReport covers the advertiser's activities.
	AdvertiserReport(advertiserID string) (*models.SalesReport, error)
	// GuideReport covers the guide's itineraries.
	GuideReport(guideID string) (*models.SalesReport, error)
	// GovernorReport covers the governor's historical places.
	GovernorReport(governorID string) (*models.SalesReport, error)
	// SellerReport covers the seller's product order lines.
	SellerReport(sellerID string) (*models.SalesReport, error)
	// AdminReport covers every realized booking and order line.
	AdminReport() (*models.SalesReport, error)
}

// DefaultReportService is the production ReportService.
type DefaultReportService struct {
	Bookings bookingRepo.BookingRepository
	Orders   orderRepo.OrderRepository
	Catalog  catalogRepo.CatalogRepository
	Logger   *zap.Logger
}

func (s *DefaultReportService) AdvertiserReport(advertiserID string) (*models.SalesReport, error) {
	return s.ownerReport(models.BookingTypeActivity, advertiserID)
}

func (s *DefaultReportService) GuideReport(guideID string) (*models.SalesReport, error) {
	return s.ownerReport(models.BookingTypeItinerary, guideID)
}

func (s *DefaultReportService) GovernorReport(governorID string) (*models.SalesReport, error) {
	return s.ownerReport(models.BookingTypeHistoricalPlace, governorID)
}

// ownerReport resolves the owner's item IDs, then runs the two booking
// pipelines over them.
func (s *DefaultReportService) ownerReport(bookingType models.BookingType, ownerID string) (*models.SalesReport, error) {
	itemIDs, err := s.Catalog.ItemIDsByOwner(bookingType, ownerID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to resolve owned items", err)
	}
	if len(itemIDs) == 0 {
		return emptyReport(), nil
	}

	lines, err := s.Bookings.SalesForItems(bookingType, itemIDs)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "sales aggregation failed", err)
	}
	byItem, err := s.Bookings.SalesByItemName(bookingType, itemIDs)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "sales aggregation failed", err)
	}
	return assemble(lines, byItem), nil
}

func (s *DefaultReportService) SellerReport(sellerID string) (*models.SalesReport, error) {
	lines, err := s.Orders.SellerSales(sellerID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "sales aggregation failed", err)
	}
	byItem, err := s.Orders.SellerSalesByItemName(sellerID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "sales aggregation failed", err)
	}
	return assemble(lines, byItem), nil
}

// AdminReport merges booking and order lines into one platform-wide view.
func (s *DefaultReportService) AdminReport() (*models.SalesReport, error) {
	bookingLines, err := s.Bookings.AllSales()
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "sales aggregation failed", err)
	}
	orderLines, err := s.Orders.AllSales()
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "sales aggregation failed", err)
	}

	lines := append(bookingLines, orderLines...)

	// Regroup by item name across both sources.
	grouped := make(map[string]*models.ItemSales)
	order := make([]string, 0)
	for _, l := range lines {
		g, ok := grouped[l.ItemName]
		if !ok {
			g = &models.ItemSales{ItemName: l.ItemName}
			grouped[l.ItemName] = g
			order = append(order, l.ItemName)
		}
		g.Gross += l.Gross
		g.Count++
	}
	byItem := make([]models.ItemSales, 0, len(order))
	for _, name := range order {
		byItem = append(byItem, *grouped[name])
	}
	return assemble(lines, byItem), nil
}

// assemble computes the fee split over the line items.
func assemble(lines []models.SalesLineItem, byItem []models.ItemSales) *models.SalesReport {
	var gross float64
	for _, l := range lines {
		gross += l.Gross
	}
	fee := round2(gross * config.AppConfig.PlatformFeeRate)
	if lines == nil {
		lines = []models.SalesLineItem{}
	}
	if byItem == nil {
		byItem = []models.ItemSales{}
	}
	return &models.SalesReport{
		Lines:  lines,
		ByItem: byItem,
		Summary: models.SalesSummary{
			Gross:       round2(gross),
			PlatformFee: fee,
			Net:         round2(gross - fee),
			Count:       len(lines),
		},
	}
}

func emptyReport() *models.SalesReport {
	return assemble(nil, nil)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

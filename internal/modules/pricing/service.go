// README: Pricing service: gathers reference data, delegates to the pure resolver.
package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentora/internal/modules/fleet"
	"rentora/internal/modules/promo"
	"rentora/internal/modules/rate"
)

// Narrow interfaces over collaborating modules keep the service testable
// without a database.
type GroupSource interface {
	Get(ctx context.Context, id int64) (*fleet.VehicleGroup, error)
}

type CatalogSource interface {
	Catalog(ctx context.Context) (*rate.Catalog, error)
}

type OneWaySource interface {
	FeeFor(ctx context.Context, fromCity, toCity string) (decimal.Decimal, error)
}

type PromoSource interface {
	Resolve(ctx context.Context, code string, start time.Time, days int) (*promo.Promo, error)
}

type DeliverySource interface {
	DeliveryFee(ctx context.Context, vehicleLocID, pickupLocID int64) (decimal.Decimal, error)
}

type Service struct {
	groups   GroupSource
	rates    CatalogSource
	oneway   OneWaySource
	promos   PromoSource
	delivery DeliverySource
}

func NewService(groups GroupSource, rates CatalogSource, oneway OneWaySource, promos PromoSource, delivery DeliverySource) *Service {
	return &Service{groups: groups, rates: rates, oneway: oneway, promos: promos, delivery: delivery}
}

type QuoteCommand struct {
	VehicleGroupID int64
	PickupDate     time.Time
	DropoffDate    time.Time
	PickupCity     string
	DropoffCity    string

	// Optional delivery context: where the vehicle currently sits and
	// where the customer picks it up. Zero ids mean no delivery.
	VehicleLocationID int64
	PickupLocationID  int64

	PromoCode   string
	IsAgreement bool
}

// Quote performs a full price resolution. It reads reference data a
// constant number of times and mutates nothing, so concurrent quotes need
// no coordination.
func (s *Service) Quote(ctx context.Context, cmd QuoteCommand) (*Quote, error) {
	if cmd.VehicleGroupID == 0 || !cmd.DropoffDate.After(cmd.PickupDate) {
		return nil, ErrBadRequest
	}
	days := RentalDays(cmd.PickupDate, cmd.DropoffDate)

	group, err := s.groups.Get(ctx, cmd.VehicleGroupID)
	if err != nil {
		return nil, err
	}
	if !group.Active {
		return nil, ErrBadRequest
	}
	if days < group.MinRentalDays || (group.MaxRentalDays != nil && days > *group.MaxRentalDays) {
		return nil, ErrBadRequest
	}

	catalog, err := s.rates.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	oneWayFee, err := s.oneway.FeeFor(ctx, cmd.PickupCity, cmd.DropoffCity)
	if err != nil {
		return nil, err
	}

	deliveryFee := decimal.Zero
	if cmd.VehicleLocationID != 0 && cmd.PickupLocationID != 0 {
		deliveryFee, err = s.delivery.DeliveryFee(ctx, cmd.VehicleLocationID, cmd.PickupLocationID)
		if err != nil {
			return nil, err
		}
	}

	var appliedPromo *promo.Promo
	if cmd.PromoCode != "" {
		appliedPromo, err = s.promos.Resolve(ctx, cmd.PromoCode, cmd.PickupDate, days)
		if err != nil {
			return nil, err
		}
	}

	return Resolve(ResolveInput{
		Group:       group,
		Catalog:     catalog,
		StartDate:   cmd.PickupDate,
		Days:        days,
		OneWayFee:   oneWayFee,
		DeliveryFee: deliveryFee,
		Promo:       appliedPromo,
		IsAgreement: cmd.IsAgreement,
	})
}

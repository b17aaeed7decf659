package domain

import "strings"

// Region is the delivery region the customer ships to.
type Region string

const (
	RegionLocal  Region = "local"
	RegionRemote Region = "remote"
)

// ParseRegion maps a user-supplied region string to a Region.
func ParseRegion(s string) (Region, bool) {
	switch Region(strings.ToLower(strings.TrimSpace(s))) {
	case RegionLocal:
		return RegionLocal, true
	case RegionRemote:
		return RegionRemote, true
	}
	return "", false
}

// DeliveryMethod is one shipping option within a region.
type DeliveryMethod string

const (
	DeliveryLocalStandard  DeliveryMethod = "local-standard"
	DeliveryLocalExpress   DeliveryMethod = "local-express"
	DeliveryRemoteCourier  DeliveryMethod = "remote-courier"
	DeliveryRemoteStandard DeliveryMethod = "remote-standard"
)

// DeliveryOption carries the fixed price and the display-only delivery window
// for one method.
type DeliveryOption struct {
	Method DeliveryMethod `json:"method"`
	Label  string         `json:"label"`
	Price  int64          `json:"price"`
	Window string         `json:"estimatedDelivery"`
}

var deliveryOptions = map[Region][]DeliveryOption{
	RegionLocal: {
		{Method: DeliveryLocalStandard, Label: "Standard Delivery", Price: 60, Window: "2-3 days"},
		{Method: DeliveryLocalExpress, Label: "Express Delivery", Price: 120, Window: "24 hours"},
	},
	RegionRemote: {
		{Method: DeliveryRemoteStandard, Label: "Standard Delivery", Price: 120, Window: "5-7 days"},
		{Method: DeliveryRemoteCourier, Label: "Courier Point Pickup", Price: 100, Window: "3-5 days"},
	},
}

// DeliveryOptionsFor returns the options available in region, in display order.
func DeliveryOptionsFor(region Region) []DeliveryOption {
	return deliveryOptions[region]
}

// LookupDelivery returns the option for method within region. It reports false
// when the method does not belong to the region, which is how a stale method
// left over from a region change is detected.
func LookupDelivery(region Region, method DeliveryMethod) (DeliveryOption, bool) {
	for _, opt := range deliveryOptions[region] {
		if opt.Method == method {
			return opt, true
		}
	}
	return DeliveryOption{}, false
}

// DeliverySelection pairs a region with one of its methods. Method may be
// empty while the customer has picked a region but not yet a method.
type DeliverySelection struct {
	Region Region         `json:"region"`
	Method DeliveryMethod `json:"method,omitempty"`
}

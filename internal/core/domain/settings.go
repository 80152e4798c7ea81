package domain

import "time"

// Settings is the single shop configuration document.
type Settings struct {
	DeliveryCharge   float64      `json:"delivery_charge" bson:"delivery_charge"`
	DeliveryRadiusKm float64      `json:"delivery_radius_km" bson:"delivery_radius_km"`
	ShopName         string       `json:"shop_name" bson:"shop_name"`
	ShopTagline      string       `json:"shop_tagline" bson:"shop_tagline"`
	ShopLatitude     float64      `json:"shop_latitude" bson:"shop_latitude"`
	ShopLongitude    float64      `json:"shop_longitude" bson:"shop_longitude"`
	ShopAddress      string       `json:"shop_address" bson:"shop_address"`
	PaymentInfo      string       `json:"payment_info" bson:"payment_info"`
	WeeklyOffDay     time.Weekday `json:"weekly_off_day" bson:"weekly_off_day"`
}

// DefaultSettings returns the shop configuration used before an admin has
// saved one.
func DefaultSettings() *Settings {
	return &Settings{
		DeliveryCharge:   50,
		DeliveryRadiusKm: 2.0,
		ShopName:         "Thu.Go.Zi – Food on Truck",
		ShopTagline:      "Fresh food delivered from our food truck",
		ShopLatitude:     28.6139,
		ShopLongitude:    77.2090,
		ShopAddress:      "Connaught Place, New Delhi, India",
		PaymentInfo:      "Cash on Delivery only",
		WeeklyOffDay:     time.Tuesday,
	}
}

// ClosedDay is an admin-declared ad-hoc closure. Tracked as data; the decay
// walk currently consults only the weekly off day.
type ClosedDay struct {
	Date string `json:"date" bson:"date"` // YYYY-MM-DD
}

// AboutContent is the public about-page copy.
type AboutContent struct {
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
}

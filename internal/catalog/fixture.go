package catalog

import "github.com/shopspring/decimal"

// Restaurant is a static catalog listing. The fixture is versionless and
// read-only; it seeds the products table once and backs the browse endpoints.
type Restaurant struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Cuisine      string     `json:"cuisine"`
	Rating       float64    `json:"rating"`
	ReviewCount  int        `json:"review_count"`
	DistanceKM   float64    `json:"distance_km"`
	DeliveryTime string     `json:"delivery_time"`
	ImageURL     string     `json:"image_url"`
	Promo        string     `json:"promo,omitempty"`
	Description  string     `json:"description,omitempty"`
	Menu         []MenuItem `json:"menu"`
}

// MenuItem is a dish on a restaurant's menu.
type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
}

// Category is a browse filter shown on the home screen.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Promotion is a marketing banner.
type Promotion struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Restaurants returns the static restaurant dataset.
func Restaurants() []Restaurant {
	return restaurants
}

// Categories returns the static category dataset.
func Categories() []Category {
	return categories
}

// Promotions returns the static promotion dataset.
func Promotions() []Promotion {
	return promotions
}

// RestaurantByID returns the fixture restaurant with the given id.
func RestaurantByID(id int64) (Restaurant, bool) {
	for _, r := range restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return Restaurant{}, false
}

var restaurants = []Restaurant{
	{
		ID:           1,
		Name:         "Burger Palace",
		Cuisine:      "American",
		Rating:       4.7,
		ReviewCount:  245,
		DistanceKM:   1.2,
		DeliveryTime: "25-40 min",
		ImageURL:     "https://images.pexels.com/photos/1639557/pexels-photo-1639557.jpeg",
		Promo:        "Free delivery on orders over $15",
		Description:  "Gourmet burgers made with 100% Angus beef, fresh ingredients, and homemade sauces.",
		Menu: []MenuItem{
			{ID: 1, Name: "Classic Burger", Description: "Beef patty, lettuce, tomato, cheese, and our special sauce", Price: price("12.99"), ImageURL: "https://images.pexels.com/photos/1639557/pexels-photo-1639557.jpeg", Category: "burgers"},
			{ID: 2, Name: "Bacon Deluxe", Description: "Beef patty, bacon, cheddar, lettuce, tomato, and BBQ sauce", Price: price("14.99"), ImageURL: "https://images.pexels.com/photos/3738730/pexels-photo-3738730.jpeg", Category: "burgers"},
			{ID: 3, Name: "Veggie Burger", Description: "Plant-based patty, avocado, lettuce, tomato, and vegan mayo", Price: price("13.99"), ImageURL: "https://images.pexels.com/photos/1633578/pexels-photo-1633578.jpeg", Category: "burgers"},
			{ID: 4, Name: "French Fries", Description: "Crispy golden fries with sea salt", Price: price("4.99"), ImageURL: "https://images.pexels.com/photos/1583884/pexels-photo-1583884.jpeg", Category: "sides"},
			{ID: 5, Name: "Onion Rings", Description: "Crispy battered onion rings with dipping sauce", Price: price("5.99"), ImageURL: "https://images.pexels.com/photos/9922855/pexels-photo-9922855.jpeg", Category: "sides"},
			{ID: 6, Name: "Chocolate Milkshake", Description: "Rich and creamy chocolate milkshake with whipped cream", Price: price("5.99"), ImageURL: "https://images.pexels.com/photos/3727250/pexels-photo-3727250.jpeg", Category: "drinks"},
		},
	},
	{
		ID:           2,
		Name:         "Pizza Express",
		Cuisine:      "Italian",
		Rating:       4.5,
		ReviewCount:  189,
		DistanceKM:   0.8,
		DeliveryTime: "30-45 min",
		ImageURL:     "https://images.pexels.com/photos/1146760/pexels-photo-1146760.jpeg",
		Promo:        "20% off on orders over $25",
		Menu: []MenuItem{
			{ID: 7, Name: "Margherita Pizza", Description: "Tomato sauce, mozzarella, and basil", Price: price("14.99"), ImageURL: "https://images.pexels.com/photos/1146760/pexels-photo-1146760.jpeg", Category: "pizza"},
			{ID: 8, Name: "Pepperoni Pizza", Description: "Tomato sauce, mozzarella, and pepperoni", Price: price("16.99"), ImageURL: "https://images.pexels.com/photos/4109111/pexels-photo-4109111.jpeg", Category: "pizza"},
		},
	},
	{
		ID:           3,
		Name:         "Taco Fiesta",
		Cuisine:      "Mexican",
		Rating:       4.3,
		ReviewCount:  156,
		DistanceKM:   1.5,
		DeliveryTime: "20-35 min",
		ImageURL:     "https://images.pexels.com/photos/4958641/pexels-photo-4958641.jpeg",
		Menu: []MenuItem{
			{ID: 9, Name: "Beef Tacos", Description: "Three tacos with seasoned beef, lettuce, cheese, and salsa", Price: price("12.99"), ImageURL: "https://images.pexels.com/photos/4958641/pexels-photo-4958641.jpeg", Category: "tacos"},
			{ID: 10, Name: "Chicken Quesadilla", Description: "Grilled chicken, melted cheese, and peppers in a flour tortilla", Price: price("11.99"), ImageURL: "https://images.pexels.com/photos/6605208/pexels-photo-6605208.jpeg", Category: "quesadillas"},
		},
	},
	{
		ID:           4,
		Name:         "Sushi World",
		Cuisine:      "Japanese",
		Rating:       4.8,
		ReviewCount:  312,
		DistanceKM:   2.2,
		DeliveryTime: "35-50 min",
		ImageURL:     "https://images.pexels.com/photos/2098085/pexels-photo-2098085.jpeg",
		Promo:        "Free miso soup with orders over $30",
		Menu: []MenuItem{
			{ID: 11, Name: "California Roll", Description: "Crab, avocado, and cucumber", Price: price("8.99"), ImageURL: "https://images.pexels.com/photos/2098085/pexels-photo-2098085.jpeg", Category: "rolls"},
			{ID: 12, Name: "Salmon Nigiri", Description: "Fresh salmon over pressed rice", Price: price("9.99"), ImageURL: "https://images.pexels.com/photos/2323398/pexels-photo-2323398.jpeg", Category: "nigiri"},
		},
	},
	{
		ID:           5,
		Name:         "Green Garden",
		Cuisine:      "Vegetarian",
		Rating:       4.6,
		ReviewCount:  178,
		DistanceKM:   1.1,
		DeliveryTime: "25-40 min",
		ImageURL:     "https://images.pexels.com/photos/1211887/pexels-photo-1211887.jpeg",
		Promo:        "10% off your first order",
		Menu: []MenuItem{
			{ID: 13, Name: "Veggie Bowl", Description: "Quinoa, roasted vegetables, avocado, and tahini dressing", Price: price("13.99"), ImageURL: "https://images.pexels.com/photos/1211887/pexels-photo-1211887.jpeg", Category: "bowls"},
			{ID: 14, Name: "Falafel Wrap", Description: "Falafel, hummus, vegetables, and tahini in a whole wheat wrap", Price: price("11.99"), ImageURL: "https://images.pexels.com/photos/1618898/pexels-photo-1618898.jpeg", Category: "wraps"},
		},
	},
}

var categories = []Category{
	{ID: 1, Name: "Fast Food", ImageURL: "https://images.pexels.com/photos/1633578/pexels-photo-1633578.jpeg"},
	{ID: 2, Name: "Pizza", ImageURL: "https://images.pexels.com/photos/4109111/pexels-photo-4109111.jpeg"},
	{ID: 3, Name: "Mexican", ImageURL: "https://images.pexels.com/photos/4958641/pexels-photo-4958641.jpeg"},
	{ID: 4, Name: "Sushi", ImageURL: "https://images.pexels.com/photos/2098085/pexels-photo-2098085.jpeg"},
	{ID: 5, Name: "Vegetarian", ImageURL: "https://images.pexels.com/photos/1211887/pexels-photo-1211887.jpeg"},
	{ID: 6, Name: "Desserts", ImageURL: "https://images.pexels.com/photos/1126359/pexels-photo-1126359.jpeg"},
}

var promotions = []Promotion{
	{ID: 1, Title: "50% OFF Your First Order", Description: "Use code WELCOME50", ImageURL: "https://images.pexels.com/photos/2103949/pexels-photo-2103949.jpeg"},
	{ID: 2, Title: "Free Delivery on Orders $15+", Description: "Limited time offer", ImageURL: "https://images.pexels.com/photos/2280545/pexels-photo-2280545.jpeg"},
	{ID: 3, Title: "Support Local Businesses", Description: "15% off local restaurants", ImageURL: "https://images.pexels.com/photos/3184188/pexels-photo-3184188.jpeg"},
}

package models

import "time"

// DemoBookings returns the fixed dataset substituted whenever the live store
// is unreachable or empty, anchored around the given day so the dashboard
// always has something plausible to show.
func DemoBookings(now time.Time) []Booking {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format("2006-01-02")
	}
	created := now

	return []Booking{
		{ID: "1", Date: day(0), Time: "12:30", PartySize: 2, GuestName: "James Wilson", GuestEmail: "james@email.com", GuestPhone: "+44 7700 900123", Occasion: "Date Night", Status: StatusConfirmed, CreatedAt: created},
		{ID: "2", Date: day(0), Time: "13:00", PartySize: 4, GuestName: "Sarah Chen", GuestEmail: "sarah@email.com", GuestPhone: "+44 7700 900456", Status: StatusConfirmed, CreatedAt: created},
		{ID: "3", Date: day(0), Time: "19:00", PartySize: 6, GuestName: "Marco Rossi", GuestEmail: "marco@email.com", GuestPhone: "+44 7700 900789", Occasion: "Birthday", SpecialRequests: "Birthday cake at 9pm please", Status: StatusConfirmed, CreatedAt: created},
		{ID: "4", Date: day(0), Time: "19:30", PartySize: 2, GuestName: "Emily Brown", GuestEmail: "emily@email.com", GuestPhone: "+44 7700 900321", Status: StatusCompleted, CreatedAt: created},
		{ID: "5", Date: day(0), Time: "20:00", PartySize: 3, GuestName: "Alex Johnson", GuestEmail: "alex@email.com", GuestPhone: "+44 7700 900654", Occasion: "Business Dinner", Status: StatusConfirmed, CreatedAt: created},
		{ID: "6", Date: day(1), Time: "19:00", PartySize: 2, GuestName: "Laura Bianchi", GuestEmail: "laura@email.com", GuestPhone: "+44 7700 900987", Occasion: "Anniversary", Status: StatusConfirmed, CreatedAt: created},
		{ID: "7", Date: day(2), Time: "20:30", PartySize: 8, GuestName: "David Park", GuestEmail: "david@email.com", GuestPhone: "+44 7700 900147", Occasion: "Celebration", SpecialRequests: "Window table if possible", Status: StatusConfirmed, CreatedAt: created},
		{ID: "8", Date: day(-1), Time: "19:00", PartySize: 4, GuestName: "Tom Harris", GuestEmail: "tom@email.com", GuestPhone: "+44 7700 900258", Status: StatusNoShow, CreatedAt: created},
		{ID: "9", Date: day(3), Time: "18:00", PartySize: 5, GuestName: "Rachel Green", GuestEmail: "rachel@email.com", GuestPhone: "+44 7700 900369", Occasion: "Birthday", Status: StatusConfirmed, CreatedAt: created},
		{ID: "10", Date: day(5), Time: "19:30", PartySize: 2, GuestName: "Michael Scott", GuestEmail: "michael@email.com", GuestPhone: "+44 7700 900741", Occasion: "Date Night", Status: StatusConfirmed, CreatedAt: created},
	}
}

// FallbackMenu is served when the menu_items table is missing or empty.
var FallbackMenu = []MenuItem{
	{ID: "1", Name: "Bruschetta al Pomodoro", Description: "Toasted sourdough, heirloom tomatoes, fresh basil, extra virgin olive oil", Price: 9.5, Category: "Antipasti", DietaryTags: []string{"vegetarian", "vegan"}, Featured: true},
	{ID: "2", Name: "Burrata e Prosciutto", Description: "Creamy burrata, 24-month aged prosciutto di Parma, rocket, balsamic glaze", Price: 14, Category: "Antipasti"},
	{ID: "3", Name: "Carpaccio di Manzo", Description: "Thinly sliced beef fillet, rocket, parmesan shavings, truffle oil", Price: 15, Category: "Antipasti", DietaryTags: []string{"gluten-free"}},
	{ID: "4", Name: "Calamari Fritti", Description: "Lightly fried squid rings, lemon aioli, marinara sauce", Price: 12, Category: "Antipasti"},
	{ID: "5", Name: "Tagliatelle al Ragù", Description: "Hand-cut egg pasta, slow-cooked Bolognese ragù, parmigiano reggiano", Price: 16, Category: "Primi", Featured: true},
	{ID: "6", Name: "Risotto ai Funghi Porcini", Description: "Carnaroli rice, wild porcini mushrooms, white wine, truffle butter", Price: 18, Category: "Primi", DietaryTags: []string{"vegetarian", "gluten-free"}, Featured: true},
	{ID: "7", Name: "Spaghetti alle Vongole", Description: "Bronze-die spaghetti, fresh clams, garlic, white wine, chilli", Price: 17, Category: "Primi"},
	{ID: "8", Name: "Gnocchi al Gorgonzola", Description: "Potato gnocchi, gorgonzola cream, toasted walnuts, sage", Price: 15, Category: "Primi", DietaryTags: []string{"vegetarian"}},
	{ID: "9", Name: "Bistecca alla Fiorentina", Description: "500g T-bone steak, rosemary, garlic, roasted potatoes, seasonal greens", Price: 38, Category: "Secondi", DietaryTags: []string{"gluten-free"}, Featured: true},
	{ID: "10", Name: "Branzino al Forno", Description: "Oven-roasted sea bass, cherry tomatoes, olives, capers, herb crust", Price: 26, Category: "Secondi", DietaryTags: []string{"gluten-free"}},
	{ID: "11", Name: "Pollo alla Milanese", Description: "Breaded chicken cutlet, rocket, cherry tomato salad, lemon", Price: 22, Category: "Secondi"},
	{ID: "12", Name: "Ossobuco alla Milanese", Description: "Braised veal shank, saffron risotto, gremolata", Price: 32, Category: "Secondi", DietaryTags: []string{"gluten-free"}},
	{ID: "13", Name: "Margherita DOP", Description: "San Marzano tomatoes, fior di latte, fresh basil, extra virgin olive oil", Price: 13, Category: "Pizza", DietaryTags: []string{"vegetarian"}, Featured: true},
	{ID: "14", Name: "Diavola", Description: "Spicy nduja, mozzarella, Calabrian chilli, honey drizzle", Price: 15, Category: "Pizza"},
	{ID: "15", Name: "Tartufo", Description: "Truffle cream, wild mushrooms, fontina, rocket, parmesan", Price: 18, Category: "Pizza", DietaryTags: []string{"vegetarian"}},
	{ID: "16", Name: "Quattro Formaggi", Description: "Mozzarella, gorgonzola, fontina, parmigiano reggiano", Price: 16, Category: "Pizza", DietaryTags: []string{"vegetarian"}},
	{ID: "17", Name: "Tiramisù", Description: "Classic mascarpone cream, espresso-soaked savoiardi, cocoa", Price: 10, Category: "Dolci", DietaryTags: []string{"vegetarian"}, Featured: true},
	{ID: "18", Name: "Panna Cotta", Description: "Vanilla bean cream, seasonal berry compote", Price: 9, Category: "Dolci", DietaryTags: []string{"vegetarian", "gluten-free"}},
	{ID: "19", Name: "Affogato al Caffè", Description: "Vanilla gelato, hot espresso, amaretti crumble", Price: 8, Category: "Dolci", DietaryTags: []string{"vegetarian"}},
	{ID: "20", Name: "Cannoli Siciliani", Description: "Crisp pastry shells, ricotta cream, pistachio, candied orange", Price: 10, Category: "Dolci", DietaryTags: []string{"vegetarian"}},
}

// FallbackTestimonials is served when the testimonials table is missing or empty.
var FallbackTestimonials = []Testimonial{
	{ID: "1", Name: "Sophie & James", Rating: 5, Quote: "The most incredible Italian dining experience we've had in London. The homemade pasta was absolutely divine, and the atmosphere was perfect for our anniversary.", Date: "2025-11-15"},
	{ID: "2", Name: "Marco R.", Rating: 5, Quote: "As an Italian living abroad, finding authentic food is hard. Bella Tavola genuinely transported me back to my nonna's kitchen. Bravissimi!", Date: "2025-10-28"},
	{ID: "3", Name: "Emily Chen", Rating: 4, Quote: "Beautiful restaurant with impeccable service. The risotto ai funghi porcini was the highlight of our evening. Will definitely return.", Date: "2025-12-03"},
	{ID: "4", Name: "David & Partners", Rating: 5, Quote: "We host all our client dinners here now. The private dining area is stunning and the staff always make our guests feel special.", Date: "2026-01-10"},
	{ID: "5", Name: "Sarah M.", Rating: 5, Quote: "Booked for my birthday through the website — seamless experience! They even surprised me with a complimentary dessert. Truly special.", Date: "2026-01-22"},
}

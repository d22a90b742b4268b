package domain

type Art struct {
	ID          string    `db:"id" json:"id"`
	ArtCode     string    `db:"art_code" json:"artCode"`
	Title       string    `db:"title" json:"title"`
	Artist      string    `db:"artist" json:"artist"`
	Description string    `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	Price       float64   `db:"price" json:"price"`
	Status      ArtStatus `db:"status" json:"status"`
	BidEndDate  string    `db:"bid_end_date" json:"bidEndDate"` // YYYY-MM-DD
	BidEndTime  string    `db:"bid_end_time" json:"bidEndTime"` // HH:MM
	CreatedAt   string    `db:"created_at" json:"createdAt"`
	UpdatedAt   string    `db:"updated_at" json:"updatedAt"`
}

type BiddingSession struct {
	ID            string        `db:"id" json:"id"`
	ArtID         string        `db:"art_id" json:"artId"`
	StartingPrice float64       `db:"starting_price" json:"startingPrice"`
	BidEndDate    string        `db:"bid_end_date" json:"bidEndDate"`
	BidEndTime    string        `db:"bid_end_time" json:"bidEndTime"`
	Status        SessionStatus `db:"status" json:"status"`
	CreatedAt     string        `db:"created_at" json:"createdAt"`
	UpdatedAt     string        `db:"updated_at" json:"updatedAt"`
}

// Bid rows keep submission order via a per-session sequence number.
type Bid struct {
	ID         string  `db:"id" json:"id"`
	SessionID  string  `db:"session_id" json:"sessionId"`
	Seq        int     `db:"seq" json:"-"`
	Name       string  `db:"name" json:"name"`
	OfferPrice float64 `db:"offer_price" json:"offerPrice"`
	Contact    string  `db:"contact" json:"contact"`
	Note       string  `db:"note" json:"note"`
	BidTime    string  `db:"bid_time" json:"bidTime"`
}

type Exhibition struct {
	ID          string `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Location    string `db:"location" json:"location"`
	StartDate   string `db:"start_date" json:"startDate"`
	EndDate     string `db:"end_date" json:"endDate"`
	Description string `db:"description" json:"description"`
	ImageURL    string `db:"image_url" json:"imageUrl"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt"`
}

type Order struct {
	ID              string      `db:"id" json:"id"`
	ArtCode         string      `db:"art_code" json:"artCode"`
	SellType        SellType    `db:"sell_type" json:"sellType"`
	CustomerName    string      `db:"customer_name" json:"customerName"`
	CustomerEmail   string      `db:"customer_email" json:"customerEmail"`
	CustomerPhone   string      `db:"customer_phone" json:"customerPhone"`
	ShippingAddress string      `db:"shipping_address" json:"shippingAddress"`
	PaymentReceipt  string      `db:"payment_receipt" json:"paymentReceipt"`
	TotalAmount     float64     `db:"total_amount" json:"totalAmount"`
	Status          OrderStatus `db:"status" json:"status"`
	CreatedAt       string      `db:"created_at" json:"createdAt"`
	UpdatedAt       string      `db:"updated_at" json:"updatedAt"`
}

package controllers

import "time"

type TokenResponse struct {
	SignedToken string `json:"token"`
}

type LoginPayload struct {
	Email    string `json:"Email" binding:"required"`
	Password string `json:"Heslo" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	UserID    uint   `json:"UzivatelID"`
	FirstName string `json:"Jmeno"`
	LastName  string `json:"Prijmeni"`
	RoleID    uint   `json:"RoleID"`
	Role      string `json:"Role"`
}

type UserSchema struct {
	UserID    uint   `gorm:"column:user_id" json:"UzivatelID"`
	FirstName string `gorm:"column:first_name" json:"Jmeno"`
	LastName  string `gorm:"column:last_name" json:"Prijmeni"`
	Email     string `gorm:"column:email" json:"Email"`
	RoleID    uint   `gorm:"column:role_id" json:"RoleID"`
	Role      string `gorm:"column:role" json:"Role"`
}

type NamePayload struct {
	Name string `json:"Nazev" binding:"required"`
}

type ProductPayload struct {
	Name       string   `json:"Nazev" binding:"required"`
	Price      *float32 `json:"Cena" binding:"required"`
	CategoryID uint     `json:"KategID"`
	Allergens  []uint   `json:"Alergeny"`
}

type CreateOrderPayload struct {
	Name string `json:"name" binding:"required"`
}

type OrderItemPayload struct {
	ProductID uint     `json:"productId" binding:"required"`
	Price     *float32 `json:"price"`
	Quantity  int      `json:"quantity" binding:"required"`
}

// OrderRow is one record of the flat listing join: order x item x allergen.
// Item columns are null for an empty order, the allergen column is null for
// an item whose product has no allergens.
type OrderRow struct {
	OrderID     uint      `gorm:"column:order_id"`
	OrderName   string    `gorm:"column:order_name"`
	OwnerName   string    `gorm:"column:owner_name"`
	OrderDate   time.Time `gorm:"column:order_date"`
	OrderPaid   bool      `gorm:"column:order_paid"`
	ItemID      *uint     `gorm:"column:item_id"`
	ProductID   *uint     `gorm:"column:product_id"`
	ProductName *string   `gorm:"column:product_name"`
	Quantity    *int      `gorm:"column:quantity"`
	Price       *float32  `gorm:"column:price"`
	ItemPaid    *bool     `gorm:"column:item_paid"`
	Allergen    *string   `gorm:"column:allergen"`
}

type OrderItemSchema struct {
	ItemID      uint     `json:"PolozkaTransakceID"`
	ProductID   uint     `json:"ProduktID"`
	ProductName string   `json:"ProduktNazev"`
	Quantity    int      `json:"Mnozstvi"`
	Price       float32  `json:"Cena"`
	Paid        bool     `json:"Zaplaceno"`
	Allergens   []string `json:"Alergeny"`
}

// OrderSummarySchema lists an order without its item rows.
type OrderSummarySchema struct {
	OrderID uint      `gorm:"column:order_id" json:"TransakceID"`
	Name    string    `gorm:"column:order_name" json:"TransakceNazev"`
	Date    time.Time `gorm:"column:order_date" json:"DatumTransakce"`
	Paid    bool      `gorm:"column:order_paid" json:"Zaplaceno"`
}

type OrderSchema struct {
	OrderID   uint              `json:"TransakceID"`
	Name      string            `json:"TransakceNazev"`
	OwnerName string            `json:"UzivatelJmeno"`
	Date      time.Time         `json:"DatumTransakce"`
	Paid      bool              `json:"Zaplaceno"`
	Items     []OrderItemSchema `json:"Items"`
}

type RemainingSchema struct {
	ProductID uint `gorm:"column:product_id" json:"ProduktID"`
	Quantity  int  `gorm:"column:quantity" json:"Mnozstvi"`
}

type PaymentLine struct {
	ProductID uint `json:"ProduktID" binding:"required"`
	Quantity  int  `json:"Mnozstvi" binding:"required"`
}

type PaymentPayload struct {
	Paid  bool          `json:"Zaplaceno"`
	Items []PaymentLine `json:"Polozky"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

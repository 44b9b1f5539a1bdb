package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/vivass/storefront/pkg/errors"
	"github.com/vivass/storefront/pkg/httputil"
)

// ContentHandler serves the static storefront view content as JSON. The
// copy is fixed; the handler carries no logic beyond page lookup.
type ContentHandler struct {
	logger *slog.Logger
}

// NewContentHandler creates a new content HTTP handler.
func NewContentHandler(logger *slog.Logger) *ContentHandler {
	return &ContentHandler{logger: logger}
}

// Feature is a short icon/title/description tile.
type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Promo is a promotional banner.
type Promo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageRef    string `json:"image_ref"`
}

// Contact is a single contact channel.
type Contact struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Value string `json:"value"`
	Link  string `json:"link"`
}

// DeliveryOption describes one way of receiving an order.
type DeliveryOption struct {
	Icon     string   `json:"icon"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Points   []string `json:"points"`
}

// pages holds the storefront copy keyed by page slug.
var pages = map[string]any{
	"home": map[string]any{
		"badge":    "Новая коллекция",
		"title":    "Стиль без ограничений",
		"subtitle": "Модная женская одежда больших размеров 48-64. Будьте красивой в любом размере!",
		"features": []Feature{
			{Icon: "Truck", Title: "Быстрая доставка", Description: "От 1 дня"},
			{Icon: "Sparkles", Title: "Качество", Description: "Премиум ткани"},
			{Icon: "Ruler", Title: "Размеры", Description: "48-64"},
			{Icon: "Heart", Title: "Поддержка", Description: "Консультации"},
		},
	},
	"delivery": map[string]any{
		"title":    "Доставка и оплата",
		"subtitle": "Удобные способы получения заказа",
		"options": []DeliveryOption{
			{
				Icon:     "Truck",
				Title:    "Курьерская доставка",
				Subtitle: "По Москве и МО",
				Points:   []string{"Доставка в день заказа", "Стоимость: от 300 ₽", "Бесплатно от 5000 ₽"},
			},
			{
				Icon:     "Store",
				Title:    "Пункты выдачи",
				Subtitle: "По всей России",
				Points:   []string{"Более 1000 пунктов", "Доставка 2-5 дней", "От 200 ₽"},
			},
		},
		"payment_methods": []Feature{
			{Icon: "CreditCard", Title: "Банковской картой", Description: "Visa, MasterCard, МИР"},
			{Icon: "Wallet", Title: "Электронные деньги", Description: "ЮMoney, QIWI"},
			{Icon: "Smartphone", Title: "СБП", Description: "Система быстрых платежей"},
		},
	},
	"promos": map[string]any{
		"title":    "Акции и спецпредложения",
		"subtitle": "Выгодные предложения для вас",
		"promos": []Promo{
			{ID: 1, Title: "Скидки до 40%", Description: "На новую коллекцию осень-зима"},
			{ID: 2, Title: "Бесплатная доставка", Description: "При заказе от 3000 ₽"},
		},
	},
	"contacts": map[string]any{
		"title":    "Контакты",
		"subtitle": "Свяжитесь с нами удобным способом",
		"contacts": []Contact{
			{Icon: "Phone", Title: "Телефон", Value: "+7 (495) 123-45-67", Link: "tel:+74951234567"},
			{Icon: "Mail", Title: "Email", Value: "info@vivass.ru", Link: "mailto:info@vivass.ru"},
			{Icon: "MapPin", Title: "Адрес", Value: "Москва, ул. Примерная, 1", Link: "#"},
		},
	},
}

// GetPage handles GET /api/v1/pages/{page}
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "page")

	page, ok := pages[slug]
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("page", slug), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

package domain

// Wire message types for the push channel. The envelope is a single
// JSON object discriminated by the "type" field; clients must ignore
// unknown types without closing the connection.
const (
	MessageTypeNotificationCount = "NOTIFICATION_COUNT"
	MessageTypeNewNotification   = "NEW_NOTIFICATION"
	MessageTypeFinancialTip      = "FINANCIAL_TIP"
)

// CountMessage replaces the client's unread counter.
type CountMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// NotificationMessage signals one new unread item. The embedded record
// is advisory: clients refetch the authoritative list from the store.
type NotificationMessage struct {
	Type         string        `json:"type"`
	Notification *Notification `json:"notification"`
}

// TipMessage carries an ephemeral financial tip. Tips are never persisted.
type TipMessage struct {
	Type string `json:"type"`
	Tip  Tip    `json:"tip"`
}

// TipIcon is the closed set of icons the client can render.
type TipIcon string

const (
	IconPiggyBank   TipIcon = "piggy-bank"
	IconCalculator  TipIcon = "calculator"
	IconCreditCard  TipIcon = "credit-card"
	IconAlertCircle TipIcon = "alert-circle"
	IconTrendingUp  TipIcon = "trending-up"
)

// Valid reports whether the icon belongs to the closed set.
func (i TipIcon) Valid() bool {
	switch i {
	case IconPiggyBank, IconCalculator, IconCreditCard, IconAlertCircle, IconTrendingUp:
		return true
	}
	return false
}

type Tip struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Icon    TipIcon `json:"icon"`
}

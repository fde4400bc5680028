package supply

import (
	"fmt"
	"strings"

	"github.com/avandijk/medstock/internal/mail"
	"github.com/avandijk/medstock/internal/model"
)

// describeSpot renders "post / cabinet (drawer)" for email bodies.
func describeSpot(loc *model.ItemLocation) string {
	spot := fmt.Sprintf("%s / %s", loc.PostName, loc.CabinetName)
	if loc.DrawerName != "" {
		spot += fmt.Sprintf(" (drawer %s)", loc.DrawerName)
	}
	return spot
}

// composeRequest builds the restock request email for a location. Out of
// stock is urgent and gets a different subject and lead line than low stock.
func composeRequest(loc *model.ItemLocation) mail.Message {
	urgent := loc.StockStatus == model.StockOutOfStock

	var subject, lead string
	if urgent {
		subject = fmt.Sprintf("URGENT: %s is out of stock at %s", loc.ItemName, loc.PostName)
		lead = fmt.Sprintf("%s is OUT OF STOCK and needs immediate replenishment.", loc.ItemName)
	} else {
		subject = fmt.Sprintf("Restock request: %s at %s", loc.ItemName, loc.PostName)
		lead = fmt.Sprintf("%s is running low and should be restocked soon.", loc.ItemName)
	}

	var b strings.Builder
	b.WriteString(lead)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Item:     %s (%s)\n", loc.ItemName, loc.ItemCategory)
	fmt.Fprintf(&b, "Location: %s\n", describeSpot(loc))
	fmt.Fprintf(&b, "Status:   %s\n", loc.StockStatus)
	b.WriteString("\nPlease arrange replenishment for this location.\n")

	return mail.Message{Subject: subject, Body: b.String(), Urgent: urgent}
}

// composeWarning builds the stock warning email sent to an item's alert
// address when a location is marked low or out of stock.
func composeWarning(item *model.Item, loc *model.ItemLocation) mail.Message {
	urgent := loc.StockStatus == model.StockOutOfStock

	var subject string
	if urgent {
		subject = fmt.Sprintf("URGENT stock warning: %s out of stock", item.Name)
	} else {
		subject = fmt.Sprintf("Stock warning: %s low", item.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stock warning for %s (%s).\n\n", item.Name, item.Category)
	fmt.Fprintf(&b, "Location: %s\n", describeSpot(loc))
	fmt.Fprintf(&b, "Status:   %s\n", loc.StockStatus)
	if item.Discontinued {
		b.WriteString("\nNote: this item is discontinued")
		if item.ReplacementItemID != nil {
			fmt.Fprintf(&b, "; replacement item id %d", *item.ReplacementItemID)
		}
		b.WriteString(".\n")
	}

	return mail.Message{Subject: subject, Body: b.String(), Urgent: urgent}
}

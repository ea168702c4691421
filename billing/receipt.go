// receipt.go - Fixed-width text receipt for a recorded transaction.
// Presentation helper; the transaction itself is the source of truth.
package billing

import (
	"fmt"
	"strings"
)

const receiptWidth = 60

// FormatReceipt renders a recorded transaction as a fixed-width text
// receipt, amounts in Rs.
func FormatReceipt(tx Transaction) string {
	var b strings.Builder
	rule := strings.Repeat("=", receiptWidth)
	thin := strings.Repeat("-", receiptWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "RECEIPT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Transaction ID: %s\n", tx.ID)
	fmt.Fprintf(&b, "Customer: %s\n", tx.CustomerName)
	fmt.Fprintf(&b, "Date: %s\n", tx.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "%-20s %-10s %-5s %-10s\n", "Product", "Price", "Qty", "Total")
	fmt.Fprintln(&b, thin)

	for _, line := range tx.Lines {
		fmt.Fprintf(&b, "%-20s Rs%-9s %-5d Rs%-9s\n",
			line.Name, line.UnitPrice.StringFixed(2), line.Quantity, line.Total.StringFixed(2))
	}

	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "%-35s Rs%s\n", "TOTAL AMOUNT", tx.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "%-35s Rs%s\n", "PAID AMOUNT", tx.PaymentAmount.StringFixed(2))
	fmt.Fprintf(&b, "%-35s Rs%s\n", "CHANGE", tx.ChangeDue.StringFixed(2))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Thank you for your business!")
	fmt.Fprintln(&b, rule)
	return b.String()
}

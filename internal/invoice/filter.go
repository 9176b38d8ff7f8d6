package invoice

import "strings"

// Filter returns the invoices whose customer name or invoice number contains
// the query, case-insensitively. An empty query matches everything.
func Filter(invoices []Invoice, query string) []Invoice {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return invoices
	}

	var matched []Invoice

	for _, inv := range invoices {
		if strings.Contains(strings.ToLower(inv.CustomerName), query) ||
			strings.Contains(strings.ToLower(inv.InvoiceNumber), query) {
			matched = append(matched, inv)
		}
	}

	return matched
}

// PageCount returns the number of fixed-size pages needed for n items.
func PageCount(n, pageSize int) int {
	if pageSize < 1 || n < 1 {
		return 0
	}

	return (n + pageSize - 1) / pageSize
}

// Paginate returns page `page` (1-based) of the given invoices. Pages out of
// range yield an empty result.
func Paginate(invoices []Invoice, page, pageSize int) []Invoice {
	if page < 1 || pageSize < 1 {
		return nil
	}

	lo := (page - 1) * pageSize
	if lo >= len(invoices) {
		return nil
	}

	hi := lo + pageSize
	if hi > len(invoices) {
		hi = len(invoices)
	}

	return invoices[lo:hi]
}

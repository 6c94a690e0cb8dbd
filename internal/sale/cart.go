package sale

import (
	"github.com/shopspring/decimal"

	"github.com/cofitearia/milktea-pos/internal/apperr"
	"github.com/cofitearia/milktea-pos/internal/model"
)

// Line is one cart position. The unit price is snapshotted from the product
// at add time and never re-reads the live catalog price.
type Line struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l Line) TotalPrice() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

// Cart accumulates sale lines and keeps subtotal, tax and total consistent
// after every mutation. Adding the same product again increments its single
// line instead of appending a duplicate. A cart is not safe for concurrent
// use; callers own one cart per register.
type Cart struct {
	lines    []Line
	index    map[int64]int // product id -> position in lines
	taxRate  decimal.Decimal
	discount decimal.Decimal

	subtotal decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal

	finalized bool
}

func NewCart() *Cart {
	return &Cart{
		index:    map[int64]int{},
		taxRate:  decimal.Zero,
		discount: decimal.Zero,
		subtotal: decimal.Zero,
		tax:      decimal.Zero,
		total:    decimal.Zero,
	}
}

func (c *Cart) AddItem(p *model.Product, quantity int) error {
	if c.finalized {
		return apperr.ErrSaleFinalized
	}
	if p == nil {
		return apperr.Invalidf("product is required")
	}
	if quantity <= 0 {
		return apperr.Invalidf("quantity must be positive, got %d", quantity)
	}

	if pos, ok := c.index[p.ID]; ok {
		c.lines[pos].Quantity += quantity
	} else {
		c.index[p.ID] = len(c.lines)
		c.lines = append(c.lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  quantity,
			UnitPrice: p.Price,
		})
	}

	c.recompute()
	return nil
}

// RemoveItem decrements the product's line by one, dropping the line when it
// reaches zero.
func (c *Cart) RemoveItem(productID int64) error {
	if c.finalized {
		return apperr.ErrSaleFinalized
	}

	pos, ok := c.index[productID]
	if !ok {
		return apperr.ErrNotFound
	}

	c.lines[pos].Quantity--
	if c.lines[pos].Quantity <= 0 {
		c.lines = append(c.lines[:pos], c.lines[pos+1:]...)
		delete(c.index, productID)
		for i := pos; i < len(c.lines); i++ {
			c.index[c.lines[i].ProductID] = i
		}
	}

	c.recompute()
	return nil
}

func (c *Cart) ApplyTax(rate decimal.Decimal) error {
	if c.finalized {
		return apperr.ErrSaleFinalized
	}
	if rate.IsNegative() {
		return apperr.Invalidf("tax rate must not be negative")
	}
	c.taxRate = rate
	c.recompute()
	return nil
}

func (c *Cart) ApplyDiscount(amount decimal.Decimal) error {
	if c.finalized {
		return apperr.ErrSaleFinalized
	}
	if amount.IsNegative() {
		return apperr.Invalidf("discount must not be negative")
	}
	c.discount = amount.Round(2)
	c.recompute()
	return nil
}

// recompute keeps total = subtotal + tax - discount at every observation
// point. Monetary values are rounded to 2 fraction digits.
func (c *Cart) recompute() {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.TotalPrice())
	}
	c.subtotal = subtotal.Round(2)
	c.tax = c.subtotal.Mul(c.taxRate).Round(2)
	c.total = c.subtotal.Add(c.tax).Sub(c.discount).Round(2)
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Subtotal() decimal.Decimal { return c.subtotal }
func (c *Cart) Tax() decimal.Decimal      { return c.tax }
func (c *Cart) Discount() decimal.Decimal { return c.discount }
func (c *Cart) Total() decimal.Decimal    { return c.total }

func (c *Cart) IsEmpty() bool   { return len(c.lines) == 0 }
func (c *Cart) Finalized() bool { return c.finalized }

// ItemCount is the sum of line quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Finalize closes the cart; every later mutation fails with
// ErrSaleFinalized.
func (c *Cart) Finalize() {
	c.finalized = true
}

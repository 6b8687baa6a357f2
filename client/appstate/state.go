// Package appstate holds the client's global state: the signed-in session
// and the cart. State changes only through typed actions applied by the
// pure Reduce function; a Store runs the reducer and tells subscribers.
package appstate

import (
	"github.com/rakesh3649/Fitness/models"
)

// Session is the signed-in account and its bearer token.
type Session struct {
	Token string         `json:"token"`
	User  models.Account `json:"user"`
}

// CartLine is one product in the cart. ProductID is the catalog key, which
// may be numeric on the site's static catalog.
type CartLine struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c Cart) Empty() bool { return len(c.Lines) == 0 }

// Subtotal is the sum of price times quantity over all lines.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Count is the number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) clone() Cart {
	return Cart{Lines: append([]CartLine(nil), c.Lines...)}
}

type State struct {
	Session *Session
	Cart    Cart
}

func (s State) Authenticated() bool {
	return s.Session != nil && s.Session.Token != ""
}

func (s State) clone() State {
	out := State{Cart: s.Cart.clone()}
	if s.Session != nil {
		sess := *s.Session
		out.Session = &sess
	}
	return out
}

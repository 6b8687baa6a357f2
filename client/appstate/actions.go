package appstate

// Action is one of the types below.
type Action interface {
	action()
}

// LoggedIn replaces the session after register or login.
type LoggedIn struct {
	Session Session
}

// LoggedOut clears the session. It is also dispatched when the server
// rejects the stored token.
type LoggedOut struct{}

// CartItemAdded adds Line, merging quantities with an existing line for
// the same product.
type CartItemAdded struct {
	Line CartLine
}

type CartItemRemoved struct {
	ProductID string
}

// CartQuantitySet sets a line's quantity; zero or less removes it.
type CartQuantitySet struct {
	ProductID string
	Quantity  int
}

// CartReset empties the cart, as after a confirmed order.
type CartReset struct{}

func (LoggedIn) action()        {}
func (LoggedOut) action()       {}
func (CartItemAdded) action()   {}
func (CartItemRemoved) action() {}
func (CartQuantitySet) action() {}
func (CartReset) action()       {}

// Reduce returns the state that follows s after a. It never modifies s.
func Reduce(s State, a Action) State {
	next := s.clone()
	switch a := a.(type) {
	case LoggedIn:
		sess := a.Session
		next.Session = &sess
	case LoggedOut:
		next.Session = nil
	case CartItemAdded:
		line := a.Line
		if line.Quantity <= 0 {
			line.Quantity = 1
		}
		for i := range next.Cart.Lines {
			if next.Cart.Lines[i].ProductID == line.ProductID {
				next.Cart.Lines[i].Quantity += line.Quantity
				return next
			}
		}
		next.Cart.Lines = append(next.Cart.Lines, line)
	case CartItemRemoved:
		next.Cart.Lines = removeLine(next.Cart.Lines, a.ProductID)
	case CartQuantitySet:
		if a.Quantity <= 0 {
			next.Cart.Lines = removeLine(next.Cart.Lines, a.ProductID)
			break
		}
		for i := range next.Cart.Lines {
			if next.Cart.Lines[i].ProductID == a.ProductID {
				next.Cart.Lines[i].Quantity = a.Quantity
			}
		}
	case CartReset:
		next.Cart = Cart{}
	}
	return next
}

func removeLine(lines []CartLine, productID string) []CartLine {
	out := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

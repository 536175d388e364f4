package comparison

import "github.com/agentstation/toolcompare/pkg/errors"

// Observer receives reconciler events. Implementations must be safe for concurrent use.
type Observer interface {
	// ObserveRemote is called after every remote call with its outcome.
	ObserveRemote(op string, err error)

	// ObserveFallback is called when an operation falls back to the local cache.
	ObserveFallback(op string, class errors.RemoteClass)

	// ObserveRejection is called when Add is rejected.
	ObserveRejection(reason string)

	// ObserveSize is called whenever the in-memory view changes.
	ObserveSize(n int)
}

// Rejection reasons passed to Observer.ObserveRejection.
const (
	ReasonAlreadyPresent = "already_present"
	ReasonLimitExceeded  = "limit_exceeded"
)

// Observers fans events out to several observers.
type Observers []Observer

var _ Observer = Observers(nil)

// ObserveRemote implements Observer.
func (o Observers) ObserveRemote(op string, err error) {
	for _, obs := range o {
		obs.ObserveRemote(op, err)
	}
}

// ObserveFallback implements Observer.
func (o Observers) ObserveFallback(op string, class errors.RemoteClass) {
	for _, obs := range o {
		obs.ObserveFallback(op, class)
	}
}

// ObserveRejection implements Observer.
func (o Observers) ObserveRejection(reason string) {
	for _, obs := range o {
		obs.ObserveRejection(reason)
	}
}

// ObserveSize implements Observer.
func (o Observers) ObserveSize(n int) {
	for _, obs := range o {
		obs.ObserveSize(n)
	}
}

type nopObserver struct{}

func (nopObserver) ObserveRemote(string, error)                {}
func (nopObserver) ObserveFallback(string, errors.RemoteClass) {}
func (nopObserver) ObserveRejection(string)                    {}
func (nopObserver) ObserveSize(int)                            {}

package domain

// RouteKind represents where processor funds settle
type RouteKind string

const (
	// RouteKindPlatform средства остаются на счете платформы
	RouteKindPlatform RouteKind = "platform"
	// RouteKindConnectedAccount destination charge на счет профессионала
	RouteKindConnectedAccount RouteKind = "connected_account"
)

// RouteTarget describes the settlement destination of a charge
type RouteTarget struct {
	Kind               RouteKind
	ConnectedAccountID string // Заполнен только для RouteKindConnectedAccount
}

// RoutePlatform returns a route targeting the platform account
func RoutePlatform() RouteTarget {
	return RouteTarget{Kind: RouteKindPlatform}
}

// RouteConnectedAccount returns a route targeting a professional's connected account
func RouteConnectedAccount(accountID string) RouteTarget {
	return RouteTarget{Kind: RouteKindConnectedAccount, ConnectedAccountID: accountID}
}

// IsPlatform returns true if funds settle to the platform account
func (t RouteTarget) IsPlatform() bool {
	return t.Kind == RouteKindPlatform
}

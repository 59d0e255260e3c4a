package search_test

import "github.com/dako7777777/rental-bidding-tool/internal/domain/landlord"

func landlordActions() []landlord.Action {
	return []landlord.Action{
		landlord.AcceptTenant{Bid: 2100},
		landlord.CounterOffer{Price: 2200},
		landlord.RequestBestFinal{MinIncrease: 44},
	}
}

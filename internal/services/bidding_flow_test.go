package services_test

import (
	"fmt"
	"testing"

	"arthaus/internal/domain"
	"arthaus/internal/services"
)

func TestBidsKeepSubmissionOrderAndRecomputeHighest(t *testing.T) {
	arts, bidding, _ := newArtStack(t)
	a := mkBidArt(t, arts, "ART-100")
	sess, err := bidding.CreateSession(a.ID, 1200)
	if err != nil {
		t.Fatal(err)
	}

	offers := []float64{1000, 1500, 1300, 2200, 1800}
	for i, p := range offers {
		if _, err := bidding.SubmitBid(sess.ID, services.BidInput{
			Name: fmt.Sprintf("bidder-%d", i), OfferPrice: p, Contact: "b@example.com",
		}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := bidding.ListBids(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Bids) != len(offers) {
		t.Fatalf("want %d bids, got %d", len(offers), len(list.Bids))
	}
	for i, b := range list.Bids {
		if b.OfferPrice != offers[i] {
			t.Fatalf("bid %d out of order: want %v got %v", i, offers[i], b.OfferPrice)
		}
	}
	if list.HighestBid != 2200 {
		t.Fatalf("highest bid must be recomputed max, got %v", list.HighestBid)
	}
}

// The server accepts offers below the starting price; only the client
// enforces a floor. Kept permissive on purpose.
func TestBidBelowStartingPriceIsAccepted(t *testing.T) {
	arts, bidding, _ := newArtStack(t)
	a := mkBidArt(t, arts, "ART-101")
	sess, err := bidding.CreateSession(a.ID, 5000)
	if err != nil {
		t.Fatal(err)
	}

	b, err := bidding.SubmitBid(sess.ID, services.BidInput{Name: "lowball", OfferPrice: 10})
	if err != nil {
		t.Fatalf("low offer must be accepted, got %v", err)
	}
	if b.OfferPrice != 10 {
		t.Fatalf("offer mangled: %+v", b)
	}
	list, _ := bidding.ListBids(sess.ID)
	if list.HighestBid != 10 {
		t.Fatalf("want highest=10, got %v", list.HighestBid)
	}
}

func TestBidIntoNonOpenSessionRejected(t *testing.T) {
	arts, bidding, _ := newArtStack(t)
	a := mkBidArt(t, arts, "ART-102")
	sess, err := bidding.CreateSession(a.ID, 100)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bidding.Cancel(sess.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := bidding.SubmitBid(sess.ID, services.BidInput{Name: "late", OfferPrice: 999}); err != services.ErrSessionNotOpen {
		t.Fatalf("want ErrSessionNotOpen, got %v", err)
	}
}

func TestSessionTransitionTable(t *testing.T) {
	arts, bidding, _ := newArtStack(t)
	a := mkBidArt(t, arts, "ART-103")
	sess, err := bidding.CreateSession(a.ID, 100)
	if err != nil {
		t.Fatal(err)
	}

	closed := domain.SessionClosed
	if _, err := bidding.Update(sess.ID, services.SessionUpdate{Status: &closed}); err != nil {
		t.Fatalf("Open->Closed should pass: %v", err)
	}
	completed := domain.SessionCompleted
	if _, err := bidding.Update(sess.ID, services.SessionUpdate{Status: &completed}); err != nil {
		t.Fatalf("Closed->Completed should pass: %v", err)
	}
	open := domain.SessionOpen
	if _, err := bidding.Update(sess.ID, services.SessionUpdate{Status: &open}); err != services.ErrIllegalTransition {
		t.Fatalf("Completed is terminal, got %v", err)
	}
	if _, err := bidding.Cancel(sess.ID); err != services.ErrIllegalTransition {
		t.Fatalf("cancel of Completed must fail, got %v", err)
	}
}

func TestCancelledSessionCannotReopen(t *testing.T) {
	arts, bidding, _ := newArtStack(t)
	a := mkBidArt(t, arts, "ART-104")
	sess, err := bidding.CreateSession(a.ID, 100)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bidding.Cancel(sess.ID); err != nil {
		t.Fatal(err)
	}
	open := domain.SessionOpen
	if _, err := bidding.Update(sess.ID, services.SessionUpdate{Status: &open}); err != services.ErrIllegalTransition {
		t.Fatalf("Cancelled is terminal, got %v", err)
	}
	// A cancelled session frees the art for a fresh one.
	if _, err := bidding.CreateSession(a.ID, 200); err != nil {
		t.Fatalf("new session after cancel should pass: %v", err)
	}
}

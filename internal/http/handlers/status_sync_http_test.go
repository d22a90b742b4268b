package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
)

// The concrete cascade scenario: Art {status:Bid, bidEndDate:2025-12-01} with
// an Open empty session; admin PUTs status NotListed; the session must read
// back Cancelled with an empty bids list.
func TestArtStatusChangeCascadesOverHTTP(t *testing.T) {
	app, _, adminTok := newTestApp(t)

	code, art := doJSON(t, app, "POST", "/arts", adminTok,
		`{"artCode":"ART-600","title":"Nightfall","artist":"R. Vane","price":2400,"status":"Bid","bidEndDate":"2025-12-01","bidEndTime":"18:00"}`)
	if code != http.StatusCreated {
		t.Fatalf("create art: %d %+v", code, art)
	}
	artID := art["id"].(string)

	code, sess := doJSON(t, app, "POST", "/bidding/", adminTok,
		fmt.Sprintf(`{"artId":%q,"startingPrice":1000}`, artID))
	if code != http.StatusCreated {
		t.Fatalf("create session: %d %+v", code, sess)
	}
	sessID := sess["id"].(string)
	if sess["status"] != "Open" || sess["bidEndDate"] != "2025-12-01" {
		t.Fatalf("bad session: %+v", sess)
	}

	code, updated := doJSON(t, app, "PUT", "/arts/"+artID, adminTok,
		`{"artCode":"ART-600","title":"Nightfall","artist":"R. Vane","price":2400,"status":"NotListed","bidEndDate":"2025-12-01","bidEndTime":"18:00"}`)
	if code != http.StatusOK || updated["status"] != "NotListed" {
		t.Fatalf("update art: %d %+v", code, updated)
	}

	code, got := doJSON(t, app, "GET", "/bidding/"+sessID, "", "")
	if code != http.StatusOK || got["status"] != "Cancelled" {
		t.Fatalf("session should be Cancelled: %d %+v", code, got)
	}
	code, bids := doJSON(t, app, "GET", "/bidding/"+sessID+"/bids", "", "")
	if code != http.StatusOK {
		t.Fatalf("list bids: %d", code)
	}
	if list, ok := bids["bids"].([]any); ok && len(list) != 0 {
		t.Fatalf("bids must stay empty, got %v", list)
	}
}

// Two bids of 1000 and 1500: both returned in order, highest computed 1500.
func TestBidListAndHighestOverHTTP(t *testing.T) {
	app, _, adminTok := newTestApp(t)

	_, art := doJSON(t, app, "POST", "/arts", adminTok,
		`{"artCode":"ART-601","title":"Harbor","price":500,"status":"Bid","bidEndDate":"2025-12-01","bidEndTime":"18:00"}`)
	_, sess := doJSON(t, app, "POST", "/bidding/", adminTok,
		fmt.Sprintf(`{"artId":%q,"startingPrice":800}`, art["id"].(string)))
	sessID := sess["id"].(string)

	for _, offer := range []int{1000, 1500} {
		code, bid := doJSON(t, app, "POST", "/bidding/"+sessID+"/bids", "",
			fmt.Sprintf(`{"name":"bidder","offerPrice":%d,"contact":"b@example.com"}`, offer))
		if code != http.StatusCreated {
			t.Fatalf("submit bid %d: %d %+v", offer, code, bid)
		}
	}

	code, body := doJSON(t, app, "GET", "/bidding/"+sessID+"/bids", "", "")
	if code != http.StatusOK {
		t.Fatalf("list bids: %d", code)
	}
	list, _ := body["bids"].([]any)
	if len(list) != 2 {
		t.Fatalf("want 2 bids, got %d", len(list))
	}
	first := list[0].(map[string]any)
	second := list[1].(map[string]any)
	if first["offerPrice"].(float64) != 1000 || second["offerPrice"].(float64) != 1500 {
		t.Fatalf("bids out of order: %v", list)
	}
	if body["highestBid"].(float64) != 1500 {
		t.Fatalf("want highest 1500, got %v", body["highestBid"])
	}
}

func TestDeleteArtCancelsSessionOverHTTP(t *testing.T) {
	app, _, adminTok := newTestApp(t)

	_, art := doJSON(t, app, "POST", "/arts", adminTok,
		`{"artCode":"ART-602","title":"Drift","price":700,"status":"Bid","bidEndDate":"2025-12-01","bidEndTime":"18:00"}`)
	artID := art["id"].(string)
	_, sess := doJSON(t, app, "POST", "/bidding/", adminTok,
		fmt.Sprintf(`{"artId":%q,"startingPrice":350}`, artID))
	sessID := sess["id"].(string)

	if code, _ := doJSON(t, app, "DELETE", "/arts/"+artID, adminTok, ""); code != http.StatusNoContent {
		t.Fatalf("delete art: %d", code)
	}
	if code, _ := doJSON(t, app, "GET", "/arts/"+artID, "", ""); code != http.StatusNotFound {
		t.Fatalf("art should be 404, got %d", code)
	}
	code, got := doJSON(t, app, "GET", "/bidding/"+sessID, "", "")
	if code != http.StatusOK || got["status"] != "Cancelled" {
		t.Fatalf("session should survive as Cancelled: %d %+v", code, got)
	}
}

func TestPendingArtsEndpoint(t *testing.T) {
	app, _, adminTok := newTestApp(t)

	_, art := doJSON(t, app, "POST", "/arts", adminTok,
		`{"artCode":"ART-603","title":"Mist","price":400,"status":"Bid","bidEndDate":"2025-12-01","bidEndTime":"18:00"}`)

	code, pending := doJSONList(t, app, "GET", "/bidding/pending-arts", adminTok, "")
	if code != http.StatusOK || len(pending) != 1 {
		t.Fatalf("want one pending art, got %d %+v", code, pending)
	}

	code, batch := doJSON(t, app, "POST", "/bidding/batch", adminTok,
		fmt.Sprintf(`[{"artId":%q,"startingPrice":200}]`, art["id"].(string)))
	if code != http.StatusOK || batch["created"].(float64) != 1 {
		t.Fatalf("batch create: %d %+v", code, batch)
	}

	code, pending = doJSONList(t, app, "GET", "/bidding/pending-arts", adminTok, "")
	if code != http.StatusOK || len(pending) != 0 {
		t.Fatalf("pending should be empty, got %+v", pending)
	}
}

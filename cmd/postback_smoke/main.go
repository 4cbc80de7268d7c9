// postback_smoke fires one postback at a running server and prints the
// response. Useful after deploys and when onboarding a new network.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

func main() {
	base := flag.String("url", "", "server base url (default http://localhost:$APP_PORT)")
	cid := flag.String("cid", "story-tv", "campaign slug or id")
	user := flag.String("user", "9876543210", "click id / user id echoed by the network")
	userKey := flag.String("user-key", "aff_click_id", "query key the campaign maps to the user id")
	event := flag.String("event", "registration", "event name")
	eventKey := flag.String("event-key", "event_name", "query key the campaign maps to the event name")
	payout := flag.String("payout", "25", "reported payout")
	flag.Parse()

	if *base == "" {
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = "8080"
		}
		*base = "http://localhost:" + port
	}
	secret := os.Getenv("POSTBACK_SECRET")
	if secret == "" {
		log.Fatal("POSTBACK_SECRET not set")
	}

	q := url.Values{}
	q.Set("cid", *cid)
	q.Set("secret", secret)
	q.Set(*userKey, *user)
	q.Set(*eventKey, *event)
	q.Set("payout", *payout)
	q.Set("timestamp", fmt.Sprint(time.Now().Unix()))
	q.Set("sub1", "smoke")

	client := &http.Client{Timeout: 15 * time.Second}
	res, err := client.Get(*base + "/postback?" + q.Encode())
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	fmt.Printf("status=%d request_id=%s\n%s\n", res.StatusCode, res.Header.Get("X-Request-ID"), body)
	if res.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

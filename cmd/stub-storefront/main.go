package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// Local stand-in for the storefront so the populate pipeline can be
// exercised without hitting the real site. Run the api-server with
//
//	GAMEHUB_STOREFRONT_BASE=http://localhost:9000
//	GAMEHUB_IMAGE_PREFIX=http:
//
// and trigger POST /games/populate as usual.
func main() {
	addr := flag.String("addr", "localhost:9000", "listen address")
	flag.Parse()

	http.HandleFunc("/games/ajax/filtered", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"products": fixtureProducts(*addr),
		})
	})

	http.HandleFunc("/game/", func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimPrefix(r.URL.Path, "/game/")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body>
<div class="description">A hand-written stand-in description for %s, long enough to exercise the short-description truncation when padded: %s</div>
</body></html>`, slug, strings.Repeat("lorem ipsum ", 30))
	})

	http.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(tinyJPEG)
	})

	log.Printf("stub-storefront listening on http://%s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func fixtureProducts(addr string) []map[string]any {
	products := []struct {
		title, slug, dev, pub string
		price                 string
		release               int64
		genres, platforms     []string
	}{
		{"Sample Quest", "sample_quest", "Stub Studio", "Stub Publishing", "9.99", 1700000000, []string{"Adventure", "Role-playing"}, []string{"windows", "linux"}},
		{"Sample Quest II", "sample_quest_2", "Stub Studio", "Stub Publishing", "19.99", 1730000000, []string{"Adventure"}, []string{"windows"}},
	}

	out := make([]map[string]any, 0, len(products))
	for _, p := range products {
		gallery := make([]string, 0, 8)
		for i := 0; i < 8; i++ {
			gallery = append(gallery, fmt.Sprintf("//%s/img/%s_%d", addr, p.slug, i))
		}
		out = append(out, map[string]any{
			"title":                     p.title,
			"slug":                      p.slug,
			"price":                     map[string]any{"amount": p.price},
			"globalReleaseDate":         p.release,
			"genres":                    p.genres,
			"supportedOperatingSystems": p.platforms,
			"developer":                 p.dev,
			"publisher":                 p.pub,
			"image":                     fmt.Sprintf("//%s/img/%s", addr, p.slug),
			"gallery":                   gallery,
		})
	}
	return out
}

// smallest valid-enough JPEG for a stub; nothing ever renders it
var tinyJPEG = []byte{
	0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00,
	0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0xFF, 0xD9,
}

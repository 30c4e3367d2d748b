package util

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
)

// SetPaginationHeaders writes X-Total-Count and an RFC 8288 Link header
// with self/next/prev relations for a paginated listing.
func SetPaginationHeaders(req *http.Request, setHeader func(key, value string), p models.Pagination) {
	setHeader("X-Total-Count", strconv.Itoa(p.TotalRecords))

	links := []string{formatLink(req, p.CurrentPage, p.RecordsPerPage, "self")}
	if p.Next != nil {
		links = append(links, formatLink(req, *p.Next, p.RecordsPerPage, "next"))
	}
	if p.Previous != nil {
		links = append(links, formatLink(req, *p.Previous, p.RecordsPerPage, "prev"))
	}
	setHeader("Link", strings.Join(links, ", "))
}

func formatLink(req *http.Request, page, perPage int, rel string) string {
	u := url.URL{
		Scheme: "https",
		Host:   req.Host,
		Path:   req.URL.Path,
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=%q", u.String(), rel)
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const placeholderImage = "/default.jpg"

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type GeoResolver interface {
	// Geocode returns nil when coordinates are unavailable after retries;
	// callers render the place without a map pin.
	Geocode(ctx context.Context, placeName, city string) *Coordinates
	// FetchPlaceImage cannot fail: primary POI search, then keyword image
	// search, then the bundled placeholder.
	FetchPlaceImage(ctx context.Context, city, placeName string) string
}

// --------- bounded coordinate cache ---------

type coordCacheEntry struct {
	Coords    Coordinates
	ExpiresAt time.Time
}

type CoordCache struct {
	mu       sync.RWMutex
	store    map[string]coordCacheEntry
	capacity int
	ttl      time.Duration
}

func NewCoordCache(capacity int, ttl time.Duration) *CoordCache {
	return &CoordCache{
		store:    make(map[string]coordCacheEntry),
		capacity: capacity,
		ttl:      ttl,
	}
}

func (c *CoordCache) Get(key string) (Coordinates, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[key]
	if !ok || time.Now().After(it.ExpiresAt) {
		return Coordinates{}, false
	}
	return it.Coords, true
}

func (c *CoordCache) Set(key string, coords Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.store) >= c.capacity {
		c.evictLocked()
	}
	c.store[key] = coordCacheEntry{Coords: coords, ExpiresAt: time.Now().Add(c.ttl)}
}

// evictLocked drops expired entries, then one arbitrary entry if the cache
// is still at capacity.
func (c *CoordCache) evictLocked() {
	now := time.Now()
	for k, v := range c.store {
		if now.After(v.ExpiresAt) {
			delete(c.store, k)
		}
	}
	if len(c.store) >= c.capacity {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}
}

// --------- amap client with backup image search ---------

type AmapClient struct {
	HTTP           *http.Client
	BaseURL        string
	Key            string
	BackupImageURL string
	BackupImageID  string
	BackupImageKey string
	Cache          *CoordCache
	Retries        int
	RetryDelay     time.Duration
	LookupTimeout  time.Duration
}

func NewAmapClient(cache *CoordCache) *AmapClient {
	base := os.Getenv("AMAP_API_URL")
	if base == "" {
		base = "https://restapi.amap.com"
	}
	backup := os.Getenv("IMAGE_API_URL")
	if backup == "" {
		backup = "https://cn.apihz.cn/api/img/apihzimgbaidu.php"
	}
	return &AmapClient{
		HTTP:           &http.Client{Timeout: 10 * time.Second},
		BaseURL:        base,
		Key:            os.Getenv("AMAP_API_KEY"),
		BackupImageURL: backup,
		BackupImageID:  os.Getenv("IMAGE_API_ID"),
		BackupImageKey: os.Getenv("IMAGE_API_KEY"),
		Cache:          cache,
		Retries:        3,
		RetryDelay:     time.Second,
		LookupTimeout:  3 * time.Second,
	}
}

type geocodePayload struct {
	Status   string `json:"status"`
	Geocodes []struct {
		Location string `json:"location"`
	} `json:"geocodes"`
}

func (c *AmapClient) Geocode(ctx context.Context, placeName, city string) *Coordinates {
	fullName := city + placeName
	if coords, ok := c.Cache.Get(fullName); ok {
		return &coords
	}

	for attempt := 1; attempt <= c.Retries; attempt++ {
		coords, err := c.geocodeOnce(ctx, fullName)
		if err == nil {
			c.Cache.Set(fullName, *coords)
			return coords
		}
		log.Printf("Geocode attempt %d/%d for %q failed: %v", attempt, c.Retries, fullName, err)
		if attempt == c.Retries {
			break
		}
		select {
		case <-time.After(c.RetryDelay):
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

func (c *AmapClient) geocodeOnce(ctx context.Context, address string) (*Coordinates, error) {
	endpoint := fmt.Sprintf("%s/v3/geocode/geo?address=%s&key=%s",
		c.BaseURL, url.QueryEscape(address), url.QueryEscape(c.Key))

	var payload geocodePayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "1" || len(payload.Geocodes) == 0 {
		return nil, fmt.Errorf("no geocode result for %q", address)
	}

	// location comes back as "lng,lat"
	parts := strings.Split(payload.Geocodes[0].Location, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed location %q", payload.Geocodes[0].Location)
	}
	lng, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("malformed longitude %q", parts[0])
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("malformed latitude %q", parts[1])
	}

	return &Coordinates{Latitude: lat, Longitude: lng}, nil
}

type poiSearchPayload struct {
	Status string `json:"status"`
	Pois   []struct {
		Photos []struct {
			URL string `json:"url"`
		} `json:"photos"`
	} `json:"pois"`
}

type backupImagePayload struct {
	Code int      `json:"code"`
	Res  []string `json:"res"`
}

func (c *AmapClient) FetchPlaceImage(ctx context.Context, city, placeName string) string {
	if imageURL, err := c.poiPhoto(ctx, city, placeName); err == nil {
		return imageURL
	} else {
		log.Printf("POI photo lookup for %q failed, trying backup: %v", placeName, err)
	}

	if imageURL, err := c.backupImage(ctx, placeName); err == nil {
		return imageURL
	} else {
		log.Printf("Backup image lookup for %q failed: %v", placeName, err)
	}

	return placeholderImage
}

func (c *AmapClient) poiPhoto(ctx context.Context, city, placeName string) (string, error) {
	endpoint := fmt.Sprintf("%s/v3/place/text?keywords=%s&city=%s&extensions=all&key=%s",
		c.BaseURL, url.QueryEscape(placeName), url.QueryEscape(city), url.QueryEscape(c.Key))

	lookupCtx, cancel := context.WithTimeout(ctx, c.LookupTimeout)
	defer cancel()

	var payload poiSearchPayload
	if err := c.getJSON(lookupCtx, endpoint, &payload); err != nil {
		return "", err
	}
	if payload.Status != "1" || len(payload.Pois) == 0 || len(payload.Pois[0].Photos) == 0 {
		return "", fmt.Errorf("no photo for %q", placeName)
	}
	return payload.Pois[0].Photos[0].URL, nil
}

func (c *AmapClient) backupImage(ctx context.Context, placeName string) (string, error) {
	endpoint := fmt.Sprintf("%s?id=%s&key=%s&words=%s&limit=1&page=1",
		c.BackupImageURL, url.QueryEscape(c.BackupImageID), url.QueryEscape(c.BackupImageKey), url.QueryEscape(placeName))

	lookupCtx, cancel := context.WithTimeout(ctx, c.LookupTimeout)
	defer cancel()

	var payload backupImagePayload
	if err := c.getJSON(lookupCtx, endpoint, &payload); err != nil {
		return "", err
	}
	if payload.Code != 200 || len(payload.Res) == 0 {
		return "", fmt.Errorf("backup image API returned code %d", payload.Code)
	}
	return payload.Res[0], nil
}

func (c *AmapClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("bad status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Location represents a geographical location with latitude and longitude coordinates.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Vehicle is the payload sent to POST /vehicles.
type Vehicle struct {
	Plate     string   `json:"plate"`
	Type      string   `json:"type"`
	Make      string   `json:"make"`
	Model     string   `json:"model"`
	Year      int      `json:"year"`
	FuelLevel float64  `json:"fuel_level"`
	Location  Location `json:"location"`
}

// Load is the payload sent to POST /loads.
type Load struct {
	ProductName      string  `json:"product_name"`
	Weight           float64 `json:"weight"`
	Amount           float64 `json:"amount"`
	LoadingAddress   string  `json:"loading_address"`
	UnloadingAddress string  `json:"unloading_address"`
	DistanceKM       float64 `json:"distance_km"`
	VehicleType      string  `json:"vehicle_type"`
}

type city struct {
	Name string
	Location
}

// Freight hubs loads are routed between
var cities = []city{
	{"Mumbai", Location{Lat: 19.0760, Lng: 72.8777}},
	{"Delhi", Location{Lat: 28.7041, Lng: 77.1025}},
	{"Bengaluru", Location{Lat: 12.9716, Lng: 77.5946}},
	{"Chennai", Location{Lat: 13.0827, Lng: 80.2707}},
	{"Kolkata", Location{Lat: 22.5726, Lng: 88.3639}},
	{"Hyderabad", Location{Lat: 17.3850, Lng: 78.4867}},
	{"Pune", Location{Lat: 18.5204, Lng: 73.8567}},
	{"Ahmedabad", Location{Lat: 23.0225, Lng: 72.5714}},
	{"Jaipur", Location{Lat: 26.9124, Lng: 75.7873}},
	{"Nagpur", Location{Lat: 21.1458, Lng: 79.0882}},
}

var vehicleTypes = []string{"truck", "trailer", "container", "tanker", "van"}

var products = []string{"Cement", "Steel coils", "Rice", "Textiles", "Diesel", "Electronics", "Fertiliser"}

func jitterLocation(base Location, meters float64) Location {
	latMetersPerDeg := 111320.0
	lngMetersPerDeg := 111320.0 * math.Cos(base.Lat*math.Pi/180)
	dLat := (rand.Float64()*2 - 1) * (meters / latMetersPerDeg)
	dLng := (rand.Float64()*2 - 1) * (meters / lngMetersPerDeg)
	return Location{Lat: base.Lat + dLat, Lng: base.Lng + dLng}
}

func randomCity() city {
	return cities[rand.Intn(len(cities))]
}

func haversineKm(a, b Location) float64 {
	R := 6371.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	s := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
	return R * c
}

// randomPlate returns an Indian-style registration number such as KA01AB1234.
func randomPlate() string {
	states := []string{"KA", "MH", "DL", "TN", "GJ", "RJ", "WB", "TS"}
	letter := func() byte { return byte('A' + rand.Intn(26)) }
	return fmt.Sprintf("%s%02d%c%c%04d", states[rand.Intn(len(states))], 1+rand.Intn(99), letter(), letter(), rand.Intn(10000))
}

func randomVehicle() Vehicle {
	makes := map[string][]string{
		"truck":     {"Tata", "Ashok Leyland", "Eicher", "BharatBenz"},
		"trailer":   {"Tata", "Ashok Leyland", "Volvo"},
		"container": {"BharatBenz", "Volvo", "Tata"},
		"tanker":    {"Tata", "Ashok Leyland"},
		"van":       {"Mahindra", "Maruti", "Force"},
	}
	vtype := vehicleTypes[rand.Intn(len(vehicleTypes))]
	return Vehicle{
		Plate:     randomPlate(),
		Type:      vtype,
		Make:      makes[vtype][rand.Intn(len(makes[vtype]))],
		Model:     fmt.Sprintf("%s-%d", vtype, 1000+rand.Intn(9000)),
		Year:      2015 + rand.Intn(10),
		FuelLevel: 40 + rand.Float64()*60,
		Location:  jitterLocation(randomCity().Location, 500),
	}
}

// randomLoad picks two distinct hubs and prices the trip by distance.
func randomLoad() Load {
	from := randomCity()
	to := randomCity()
	for to.Name == from.Name {
		to = randomCity()
	}
	distance := math.Round(haversineKm(from.Location, to.Location)*10) / 10
	return Load{
		ProductName:      products[rand.Intn(len(products))],
		Weight:           float64(1000 + rand.Intn(24000)),
		Amount:           math.Round(distance*(40+rand.Float64()*20)) + 500,
		LoadingAddress:   from.Name,
		UnloadingAddress: to.Name,
		DistanceKM:       distance,
		VehicleType:      vehicleTypes[rand.Intn(len(vehicleTypes))],
	}
}

var authToken string

var httpClient = &http.Client{Timeout: 10 * time.Second}

func authorizedRequest(method, endpoint, contentType string, body *bytes.Buffer) (*http.Response, error) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	return httpClient.Do(req)
}

func authorizedPost(endpoint string, contentType string, body *bytes.Buffer) (*http.Response, error) {
	return authorizedRequest(http.MethodPost, endpoint, contentType, body)
}

// postJSON sends v and decodes the response body into out when out is non-nil.
func postJSON(method, endpoint string, v interface{}, out interface{}) error {
	var body *bytes.Buffer
	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	}
	resp, err := authorizedRequest(method, endpoint, "application/json", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var detail struct {
			Detail interface{} `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return fmt.Errorf("%s %s failed with status %d: %v", method, endpoint, resp.StatusCode, detail.Detail)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func createdID(method, endpoint string, v interface{}) (string, error) {
	var result map[string]interface{}
	if err := postJSON(method, endpoint, v, &result); err != nil {
		return "", err
	}
	id, ok := result["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("invalid id in response")
	}
	return id, nil
}

func login(apiURL, email, password string) (string, error) {
	data, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	resp, err := authorizedPost(apiURL+"/auth/login", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to log in: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Token, nil
}

func createVehicle(apiURL string, vehicle Vehicle) (string, error) {
	id, err := createdID(http.MethodPost, apiURL+"/vehicles", vehicle)
	if err != nil {
		return "", fmt.Errorf("failed to create vehicle: %w", err)
	}
	log.WithFields(log.Fields{
		"vehicle_id": id,
		"plate":      vehicle.Plate,
		"type":       vehicle.Type,
		"make":       vehicle.Make,
	}).Info("Created vehicle")
	return id, nil
}

func createLoad(apiURL string, load Load) (string, error) {
	id, err := createdID(http.MethodPost, apiURL+"/loads", load)
	if err != nil {
		return "", fmt.Errorf("failed to create load: %w", err)
	}
	log.WithFields(log.Fields{
		"load_id": id,
		"product": load.ProductName,
		"from":    load.LoadingAddress,
		"to":      load.UnloadingAddress,
		"amount":  load.Amount,
	}).Info("Created load")
	return id, nil
}

// dispatch accepts a load for a vehicle, marks the vehicle loaded and credits its
// wallet with the load payment.
func dispatch(apiURL, loadID, vehicleID string, amount float64) error {
	acceptURL := fmt.Sprintf("%s/loads/%s/accept?vehicle_id=%s", apiURL, loadID, url.QueryEscape(vehicleID))
	if err := postJSON(http.MethodPost, acceptURL, nil, nil); err != nil {
		return fmt.Errorf("failed to accept load: %w", err)
	}
	if err := postJSON(http.MethodPatch, apiURL+"/vehicles/"+vehicleID, map[string]string{"status": "loaded"}, nil); err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	tx := map[string]interface{}{
		"vehicle_id": vehicleID,
		"amount":     amount,
		"type":       "credit",
		"reason":     "load_payment",
	}
	if _, err := createdID(http.MethodPost, apiURL+"/wallet/transactions", tx); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	log.WithFields(log.Fields{"load_id": loadID, "vehicle_id": vehicleID}).Info("Dispatched load")
	return nil
}

func envInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8000"
	}

	// Optional JWT for a protected API
	authToken = os.Getenv("SIM_AUTH_TOKEN")
	if email := os.Getenv("SIM_EMAIL"); authToken == "" && email != "" {
		token, err := login(apiURL, email, os.Getenv("SIM_PASSWORD"))
		if err != nil {
			log.WithError(err).Fatal("Failed to authenticate simulator")
		}
		authToken = token
	}

	fleetSize := envInt("FLEET_SIZE", 10)
	loadCount := envInt("LOAD_COUNT", 20)

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"loads":      loadCount,
		"api_url":    apiURL,
	}).Info("Seeding fleet")

	vehicleIDs := make([]string, 0, fleetSize)
	for i := 0; i < fleetSize; i++ {
		id, err := createVehicle(apiURL, randomVehicle())
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		vehicleIDs = append(vehicleIDs, id)
	}
	if len(vehicleIDs) == 0 {
		log.Error("No vehicles created. Ensure the API is reachable and the token is valid. Exiting.")
		return
	}

	dispatched := 0
	for i := 0; i < loadCount; i++ {
		load := randomLoad()
		loadID, err := createLoad(apiURL, load)
		if err != nil {
			log.WithError(err).Error("Failed to create load")
			continue
		}
		// Leave every third load open for drivers to pick up.
		if i%3 == 2 {
			continue
		}
		vehicleID := vehicleIDs[i%len(vehicleIDs)]
		if err := dispatch(apiURL, loadID, vehicleID, load.Amount); err != nil {
			log.WithError(err).WithField("load_id", loadID).Error("Failed to dispatch load")
			continue
		}
		dispatched++
	}

	log.WithFields(log.Fields{
		"vehicles":   len(vehicleIDs),
		"dispatched": dispatched,
	}).Info("Fleet seeding completed")
}

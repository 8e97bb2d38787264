package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	fmt.Println("Weather Assistant API Client Example")
	fmt.Println("====================================")

	// Base URL for the API
	baseURL := "http://localhost:8080"

	// Wait a moment for the server to fetch some data
	fmt.Println("Waiting for the service to collect initial data...")
	time.Sleep(5 * time.Second)

	// Get available locations
	fmt.Println("\nFetching available locations...")
	locationsURL := fmt.Sprintf("%s/api/weather/locations", baseURL)
	locationsResp, err := http.Get(locationsURL)
	if err != nil {
		fmt.Printf("Error fetching locations: %v\n", err)
		os.Exit(1)
	}
	defer locationsResp.Body.Close()

	var locationsData map[string]interface{}
	locationsBody, _ := io.ReadAll(locationsResp.Body)
	json.Unmarshal(locationsBody, &locationsData)

	fmt.Printf("Available locations: %v\n\n", locationsData["locations"])

	var locations []interface{}
	if locs, ok := locationsData["locations"].([]interface{}); ok {
		locations = locs
	}
	if len(locations) == 0 {
		fmt.Println("No locations available yet. Try again later.")
		return
	}

	// Get the first location from the list
	location := locations[0].(string)

	// Fetch the temperature chart geometry for the last 7 days
	fmt.Printf("Fetching temperature chart for %s...\n", location)
	chartURL := fmt.Sprintf("%s/api/chart/%s?window=7d&metric=temperature&width=640&height=240", baseURL, location)
	chartResp, err := http.Get(chartURL)
	if err != nil {
		fmt.Printf("Error fetching chart: %v\n", err)
		os.Exit(1)
	}
	defer chartResp.Body.Close()

	chartBody, _ := io.ReadAll(chartResp.Body)
	var chartData map[string]interface{}
	json.Unmarshal(chartBody, &chartData)
	prettyJSON, _ := json.MarshalIndent(chartData, "", "  ")
	fmt.Printf("\nChart geometry for %s:\n%s\n", location, string(prettyJSON))

	// Ask the chat endpoint a question
	fmt.Printf("\nAsking the assistant about rain in %s...\n", location)
	chatURL := fmt.Sprintf("%s/api/chat/%s", baseURL, location)
	reqBody, _ := json.Marshal(map[string]interface{}{
		"message": "Will it rain today?",
	})
	chatResp, err := http.Post(chatURL, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		fmt.Printf("Error calling chat: %v\n", err)
		os.Exit(1)
	}
	defer chatResp.Body.Close()

	chatBody, _ := io.ReadAll(chatResp.Body)
	var chatData map[string]interface{}
	json.Unmarshal(chatBody, &chatData)
	fmt.Printf("\nAssistant says: %v\n", chatData["text"])
	fmt.Printf("Extracted fact: %v\n", chatData["fact"])
}

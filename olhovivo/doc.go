// Package olhovivo provides a client for the SPTrans Olho Vivo API.
//
// Olho Vivo publishes São Paulo's bus network: lines, stops, corridors,
// operators, real-time vehicle positions and arrival forecasts, plus a KMZ map
// of the network. The API uses a token login that establishes a cookie session;
// every later request rides on that cookie.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := olhovivo.NewClient(olhovivo.Config{
//		BaseURL:    "http://api.olhovivo.sptrans.com.br/",
//		APIVersion: "v2.1",
//		Token:      token,
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	lines, err := client.SearchLines(ctx, "Lapa")
//
// # Busy responses
//
// The API sometimes answers with an object carrying a Message field instead of
// the real payload. Such answers are retried with exponential backoff, up to
// WithMaxAttempts attempts, after which a RetryExhaustedError is returned.
//
// # Error Handling
//
//   - ErrInvalidConfig: missing base URL, API version or token
//   - ErrAuthentication: login rejected or no session cookie
//   - ErrNotAuthenticated: call on a session that never logged in
//   - ValidationError: non-numeric code or invalid direction, no request made
//   - NetworkError: transport failure or timeout
//   - APIError: non-2xx status
//
// A Client is not safe for concurrent use. VehiclesByLines shows how to fan
// out across independent sessions.
package olhovivo

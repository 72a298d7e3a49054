package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"lending/pkg/resthttp"

	"github.com/spf13/cobra"
)

const defaultAPI = "http://localhost:9000/api"

// addClientFlags flags of commands calling a running server
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String("api", defaultAPI, "api base url of a running lending server")
	cmd.Flags().String("token", os.Getenv("LENDING_ACCESS_TOKEN"), "access token, default is $LENDING_ACCESS_TOKEN")
}

type apiResponse struct {
	Data json.RawMessage `json:"data"`
}

// callAPI call the api of a running server and decode the data field into out
func callAPI(ctx context.Context, cmd *cobra.Command, method, path string, body, out interface{}) error {
	api, _ := cmd.Flags().GetString("api")
	token, _ := cmd.Flags().GetString("token")

	request := resthttp.Request(ctx)
	if token != "" {
		request = request.SetAuthToken(token)
	}

	var resp apiResponse
	url := strings.TrimSuffix(api, "/") + path
	if _, err := resthttp.Execute(request, method, url, body, &resp); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(resp.Data, out)
}

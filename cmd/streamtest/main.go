package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Streams rows into a running server and reads them back, to eyeball NDJSON
// behavior end to end. Expects a table 'stream' with columns id(int) n(string).
func main() {

	base := "http://localhost:8080"

	r, w := io.Pipe()
	e := json.NewEncoder(w)

	go func() {
		for i := 0; i < 1000; i++ {
			e.Encode(map[string]any{
				"id": i,
				"n":  fmt.Sprint(i),
			})
		}
		w.Close()
	}()

	{
		req, err := http.NewRequest("POST", base+"/v1/tables/stream:insert", r)
		if err != nil {
			fmt.Println("ERROR: new request:", err.Error())
			os.Exit(3)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Println("ERROR: do request:", err.Error())
			os.Exit(4)
		}
		io.Copy(io.Discard, resp.Body)
	}

	{
		resp, err := http.Get(base + "/v1/tables/stream/rows")
		if err != nil {
			fmt.Println("ERROR: read rows:", err.Error())
			os.Exit(5)
		}

		d := json.NewDecoder(resp.Body)

		var o json.RawMessage
		for {
			err := d.Decode(&o)
			if err == io.EOF {
				break
			}
			if err != nil {
				fmt.Println("ERROR: response body:", err.Error())
				os.Exit(6)
			}

			fmt.Println("RECEIVED:", string(o))
		}
	}
}

package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/fulldump/biff"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// json/v2 can decode the NDJSON row stream the server emits without any
// framing on top.
func Test_Jsonv2_RowStream(t *testing.T) {

	b := bytes.NewBufferString(`{"id":1,"n":"one"}
{"id":2,"n":"two"}
`)
	jsonDecoder := jsontext.NewDecoder(b)

	type row struct {
		Id int64  `json:"id"`
		N  string `json:"n"`
	}

	rows := []row{}
	for {
		r := row{}
		err := json2.UnmarshalDecode(jsonDecoder, &r)
		if err == io.EOF {
			break
		}
		biff.AssertNil(err)
		rows = append(rows, r)
	}

	biff.AssertEqual(rows, []row{{1, "one"}, {2, "two"}})
}

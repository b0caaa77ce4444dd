package polygon

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"
)

// DefaultAPIURL is the production Polygon API endpoint.
const DefaultAPIURL = "https://polygon.codeforces.com/api"

// Client wraps the Polygon problem-management HTTP API. Every call is a
// single synchronous form-encoded POST signed with the key/secret pair.
type Client struct {
	http   *resty.Client
	apiURL string
	key    string
	secret string

	now   func() time.Time
	nonce func() string
}

// NewClient creates a Polygon API client for the given endpoint and
// credentials. Pass an empty apiURL to use DefaultAPIURL.
func NewClient(apiURL string, key string, secret string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		http:   resty.New(),
		apiURL: strings.TrimRight(apiURL, "/"),
		key:    key,
		secret: secret,
		now:    time.Now,
		nonce:  randomNonce,
	}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() {
	c.http.Close()
}

// call issues one signed API request and unwraps the Polygon response
// envelope. A non-OK status becomes an *APIError with the remote comment.
func (c *Client) call(ctx context.Context, method string, params map[string]string) (json.RawMessage, error) {
	form := make(map[string]string, len(params)+3)
	for k, v := range params {
		form[k] = v
	}
	form["apiKey"] = c.key
	form["time"] = strconv.FormatInt(c.now().Unix(), 10)
	form["apiSig"] = c.sign(method, form)

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(c.apiURL + "/" + method)
	if err != nil {
		return nil, fmt.Errorf("polygon %s request failed: %w", method, err)
	}

	var body apiResponse
	if err := json.Unmarshal(res.Bytes(), &body); err != nil {
		if res.StatusCode() != http.StatusOK {
			return nil, &APIError{Method: method, Comment: "HTTP error " + strconv.Itoa(res.StatusCode())}
		}
		return nil, fmt.Errorf("polygon %s: failed to decode response %q: %w", method, res.String(), err)
	}

	if body.Status != "OK" {
		comment := body.Comment
		if comment == "" {
			comment = "unknown API error"
		}
		return nil, &APIError{Method: method, Comment: comment}
	}

	return body.Result, nil
}

// sign computes the apiSig parameter: a 6-character nonce followed by the
// sha512 hex digest of "<nonce>/<method>?<sorted params>#<secret>".
func (c *Client) sign(method string, params map[string]string) string {
	nonce := c.nonce()

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	base := nonce + "/" + method + "?" + strings.Join(pairs, "&") + "#" + c.secret
	digest := sha512.Sum512([]byte(base))
	return nonce + hex.EncodeToString(digest[:])
}

func randomNonce() string {
	const hexdigits = "0123456789abcdef"
	raw := make([]byte, 6)
	if _, err := rand.Read(raw); err != nil {
		panic(fmt.Sprintf("failed to read random bytes: %v", err))
	}
	out := make([]byte, len(raw))
	for i, b := range raw {
		out[i] = hexdigits[int(b)%len(hexdigits)]
	}
	return string(out)
}

// CreateProblem creates an empty problem owned by the API key's user and
// returns its id. Depending on the Polygon version the result is either the
// problem object or a single-element list of it.
func (c *Client) CreateProblem(ctx context.Context, name string) (int, error) {
	result, err := c.call(ctx, "problem.create", map[string]string{"name": name})
	if err != nil {
		return 0, err
	}

	var obj struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(result, &obj); err == nil && obj.ID != 0 {
		return obj.ID, nil
	}

	var list []struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(result, &list); err == nil && len(list) > 0 && list[0].ID != 0 {
		return list[0].ID, nil
	}

	return 0, &APIError{Method: "problem.create", Comment: "unexpected response shape"}
}

// UpdateInfo sets the general problem parameters.
func (c *Client) UpdateInfo(ctx context.Context, problemID int, info ProblemInfo) error {
	_, err := c.call(ctx, "problem.updateInfo", map[string]string{
		"problemId":   strconv.Itoa(problemID),
		"inputFile":   info.InputFile,
		"outputFile":  info.OutputFile,
		"timeLimit":   strconv.Itoa(info.TimeLimitMs),
		"memoryLimit": strconv.Itoa(info.MemoryLimitMb),
		"interactive": strconv.FormatBool(info.Interactive),
	})
	return err
}

// SaveStatement creates or updates the problem statement for one language.
func (c *Client) SaveStatement(ctx context.Context, problemID int, st Statement) error {
	_, err := c.call(ctx, "problem.saveStatement", map[string]string{
		"problemId": strconv.Itoa(problemID),
		"lang":      st.Lang,
		"name":      st.Name,
		"legend":    st.Legend,
		"input":     st.Input,
		"output":    st.Output,
	})
	return err
}

// SetChecker assigns one of the standard testlib checkers to the problem.
func (c *Client) SetChecker(ctx context.Context, problemID int, checker string) error {
	_, err := c.call(ctx, "problem.setChecker", map[string]string{
		"problemId": strconv.Itoa(problemID),
		"checker":   checker,
	})
	return err
}

// SaveSolution uploads a solution file.
func (c *Client) SaveSolution(ctx context.Context, problemID int, sol Solution) error {
	_, err := c.call(ctx, "problem.saveSolution", map[string]string{
		"problemId":  strconv.Itoa(problemID),
		"name":       sol.Name,
		"file":       sol.File,
		"sourceType": sol.SourceType,
		"tag":        sol.Tag,
	})
	return err
}

// SaveTest uploads a single test into the given testset.
func (c *Client) SaveTest(ctx context.Context, problemID int, test Test) error {
	params := map[string]string{
		"problemId":  strconv.Itoa(problemID),
		"testset":    test.Testset,
		"testIndex":  strconv.Itoa(test.Index),
		"testInput":  test.Input,
		"testAnswer": test.Answer,
	}
	if test.UseInStatements {
		params["testUseInStatements"] = "true"
		params["testInputForStatements"] = test.Input
		params["testOutputForStatements"] = test.Answer
	}
	_, err := c.call(ctx, "problem.saveTest", params)
	return err
}

// CommitChanges commits the working copy of the problem.
func (c *Client) CommitChanges(ctx context.Context, problemID int, minor bool) error {
	_, err := c.call(ctx, "problem.commitChanges", map[string]string{
		"problemId":    strconv.Itoa(problemID),
		"minorChanges": strconv.FormatBool(minor),
	})
	return err
}

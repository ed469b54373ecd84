package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// lostFoundABIJSON is the deployed LostAndFound contract surface. The items
// getter returns its fields as an anonymous tuple in declaration order:
// id, owner, title, description, imageUrl, bountyAmount, finder, isClaimed,
// isResolved, createdAt, location, category.
const lostFoundABIJSON = `[
  {"type":"function","name":"itemCounter","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
  {"type":"function","name":"items","stateMutability":"view","inputs":[{"type":"uint256"}],"outputs":[
    {"type":"uint256"},{"type":"address"},{"type":"string"},{"type":"string"},{"type":"string"},
    {"type":"uint256"},{"type":"address"},{"type":"bool"},{"type":"bool"},{"type":"uint256"},
    {"type":"string"},{"type":"string"}]},
  {"type":"function","name":"getClaimants","stateMutability":"view","inputs":[{"type":"uint256"}],"outputs":[{"type":"address[]"}]},
  {"type":"function","name":"getClaimMessage","stateMutability":"view","inputs":[{"type":"uint256"},{"type":"address"}],"outputs":[{"type":"string"}]},
  {"type":"function","name":"getUserProfile","stateMutability":"view","inputs":[{"type":"address"}],"outputs":[
    {"type":"uint256"},{"type":"uint256"},{"type":"uint256"},{"type":"int256"},{"type":"bool"}]},
  {"type":"function","name":"reportLostItem","stateMutability":"payable","inputs":[
    {"type":"string"},{"type":"string"},{"type":"string"},{"type":"string"},{"type":"string"}],"outputs":[{"type":"uint256"}]},
  {"type":"function","name":"claimItem","stateMutability":"nonpayable","inputs":[{"type":"uint256"},{"type":"string"}],"outputs":[]},
  {"type":"function","name":"confirmFinder","stateMutability":"nonpayable","inputs":[{"type":"uint256"},{"type":"address"}],"outputs":[]},
  {"type":"function","name":"cancelItemReport","stateMutability":"nonpayable","inputs":[{"type":"uint256"}],"outputs":[]},
  {"type":"function","name":"increaseBounty","stateMutability":"payable","inputs":[{"type":"uint256"}],"outputs":[]},
  {"type":"event","name":"ItemReported","inputs":[
    {"type":"uint256","indexed":true},{"type":"address","indexed":true},{"type":"string"},{"type":"uint256"},{"type":"uint256"}]},
  {"type":"event","name":"ItemClaimed","inputs":[
    {"type":"uint256","indexed":true},{"type":"address","indexed":true},{"type":"string"},{"type":"uint256"}]},
  {"type":"event","name":"ItemResolved","inputs":[
    {"type":"uint256","indexed":true},{"type":"address","indexed":true},{"type":"uint256"},{"type":"uint256"}]}
]`

var lostFoundABI = mustParseABI(lostFoundABIJSON)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

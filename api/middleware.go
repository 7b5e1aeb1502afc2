package api

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

const walletHeader = "X-Wallet-Address"

var walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// WalletRequired validates the caller's wallet address header and stores the
// lowercased address in the request context.
func WalletRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.GetHeader(walletHeader)
		if wallet == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing wallet address header"})
			return
		}
		if !walletPattern.MatchString(wallet) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address"})
			return
		}
		c.Set("wallet", strings.ToLower(wallet))
		c.Next()
	}
}

// GetWallet returns the caller's wallet address (must be used after WalletRequired)
func GetWallet(c *gin.Context) string {
	v, _ := c.Get("wallet")
	if v == nil {
		return ""
	}
	return v.(string)
}

package handler

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

type Enable2FAResponse struct {
	Secret        string   `json:"secret"`
	QRCode        string   `json:"qr_code"`
	RecoveryCodes []string `json:"recovery_codes,omitempty"`
}

// Generate2FASecretHandler generates a new TOTP secret and QR code for
// the user to scan. Nothing is persisted until the code is confirmed.
func Generate2FASecretHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "missing or invalid token")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "failed to fetch user")
		return
	}

	if user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      utils.JWTIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		utils.InternalError(c, "failed to generate 2FA secret")
		return
	}

	var buf bytes.Buffer
	img, err := key.Image(200, 200)
	if err != nil {
		utils.InternalError(c, "failed to generate QR code")
		return
	}
	if err := png.Encode(&buf, img); err != nil {
		utils.InternalError(c, "failed to encode QR code")
		return
	}

	utils.Success(c, Enable2FAResponse{
		Secret: key.Secret(),
		QRCode: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}

// Enable2FAHandler confirms the scanned secret with a live code and
// turns 2FA on, handing back single-use recovery codes.
func Enable2FAHandler(c *gin.Context) {
	var req struct {
		Secret string `json:"secret" binding:"required"`
		Code   string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	userID, _ := c.Get("user_id")
	userRepo := repository.GetUserRepo(utils.MongoClient)

	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "failed to fetch user")
		return
	}
	if user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is already enabled")
		return
	}

	if !totp.Validate(req.Code, req.Secret) {
		utils.BadRequest(c, "invalid 2FA code")
		return
	}

	recoveryCodes, err := utils.GenerateRecoveryCodes()
	if err != nil {
		utils.InternalError(c, "failed to generate recovery codes")
		return
	}

	hashedCodes := utils.HashRecoveryCodes(recoveryCodes)
	if err := userRepo.Enable2FAWithRecoveryCodes(c.Request.Context(), userID.(string), req.Secret, hashedCodes); err != nil {
		utils.InternalError(c, "failed to enable 2FA")
		return
	}

	utils.Success(c, gin.H{
		"message":        "2FA enabled successfully",
		"recovery_codes": recoveryCodes,
		"warning":        "Save these recovery codes securely. They will not be shown again.",
	})
}

// Verify2FAHandler checks a live code against the stored secret.
func Verify2FAHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	userID, _ := c.Get("user_id")
	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "failed to fetch user")
		return
	}

	if !user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is not enabled")
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		utils.Unauthorized(c, "invalid 2FA code")
		return
	}

	utils.Success(c, gin.H{"message": "2FA code valid"})
}

// UseRecoveryCodeHandler consumes a single-use recovery code.
func UseRecoveryCodeHandler(c *gin.Context) {
	var req struct {
		RecoveryCode string `json:"recovery_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	userID, _ := c.Get("user_id")
	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "failed to fetch user")
		return
	}

	hashedCode := utils.HashRecoveryCode(strings.ToUpper(strings.ReplaceAll(req.RecoveryCode, "-", "")))

	found := false
	remaining := make([]string, 0, len(user.RecoveryCodes))
	for _, storedCode := range user.RecoveryCodes {
		if storedCode == hashedCode && !found {
			found = true
			continue
		}
		remaining = append(remaining, storedCode)
	}
	if !found {
		utils.Unauthorized(c, "invalid recovery code")
		return
	}

	if err := userRepo.UpdateRecoveryCodes(c.Request.Context(), userID.(string), remaining); err != nil {
		utils.InternalError(c, "failed to update recovery codes")
		return
	}

	utils.Success(c, gin.H{
		"message":         "recovery code accepted",
		"remaining_codes": len(remaining),
		"warning":         "Please set up a new authenticator app as soon as possible",
	})
}

// Disable2FAHandler turns 2FA off after verifying a live code.
func Disable2FAHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	userID, _ := c.Get("user_id")
	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "failed to fetch user")
		return
	}

	if !user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is not enabled")
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		utils.Unauthorized(c, "invalid 2FA code")
		return
	}

	if err := userRepo.Disable2FA(c.Request.Context(), userID.(string)); err != nil {
		utils.InternalError(c, "failed to disable 2FA")
		return
	}

	utils.Success(c, gin.H{"message": "2FA disabled successfully"})
}

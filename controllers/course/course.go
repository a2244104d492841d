package courseController

import (
	"log"

	"lms/config"
	"lms/middleware"
	"lms/models"
	"lms/store"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// Controller serves the category and course endpoints.
type Controller struct {
	Cfg     *config.Config
	Catalog *store.CatalogStore
}

func New(cfg *config.Config, catalog *store.CatalogStore) *Controller {
	return &Controller{Cfg: cfg, Catalog: catalog}
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, ok := utils.ParseIDParam(c, param)
	if !ok {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id!")
	}
	return id, nil
}

func (ctl *Controller) CreateCategory(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCategory").(*courseValidator.CreateCategoryRequest)

	category, err := ctl.Catalog.CreateCategory(reqData.Name)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully.", category)
}

func (ctl *Controller) GetCategories(c *fiber.Ctx) error {
	categories, err := ctl.Catalog.FindCategories()
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully.", categories)
}

func (ctl *Controller) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	category, err := ctl.Catalog.FindCategory(id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category fetched successfully.", category)
}

func (ctl *Controller) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedCategory").(*courseValidator.CreateCategoryRequest)

	category, err := ctl.Catalog.UpdateCategory(id, reqData.Name)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully.", category)
}

// DeleteCategory refuses when courses are still attached.
func (ctl *Controller) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Catalog.DeleteCategory(id); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully.", nil)
}

// CreateCourse creates a course owned by the caller. An optional
// multipart "thumbnail" file is stored and linked.
func (ctl *Controller) CreateCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		InstructorID: user.ID,
		CategoryID:   reqData.CategoryID,
		Price:        reqData.Price,
	}

	if file, err := c.FormFile("thumbnail"); err == nil {
		url, err := utils.SaveUploadedFile(file, ctl.Cfg.UploadRoot, utils.UploadThumbnails, "course")
		if err != nil {
			log.Printf("Thumbnail upload rejected: %v", err)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail upload failed!", nil)
		}
		course.ThumbnailURL = url
	}

	if err := ctl.Catalog.CreateCourse(&course); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

func (ctl *Controller) GetCourses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	courses, err := ctl.Catalog.FindCourses(limit, offset)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

func (ctl *Controller) GetCourse(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	course, err := ctl.Catalog.FindCourse(id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully.", course)
}

func (ctl *Controller) GetCoursesByCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "categoryId")
	if err != nil {
		return err
	}
	courses, err := ctl.Catalog.FindCoursesByCategory(id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

// UpdateCourse applies a partial update. Instructors may only touch their
// own courses; admins may touch any.
func (ctl *Controller) UpdateCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedCourse").(*courseValidator.UpdateCourseRequest)

	course, err := ctl.Catalog.FindCourse(id)
	if err != nil {
		return err
	}
	if user.Role != models.RoleAdmin && course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	fields := map[string]interface{}{}
	if reqData.Title != nil {
		fields["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		fields["description"] = *reqData.Description
	}
	if reqData.CategoryID != nil {
		fields["category_id"] = *reqData.CategoryID
	}
	if reqData.Price != nil {
		fields["price"] = *reqData.Price
	}
	if reqData.IsPublished != nil {
		fields["is_published"] = *reqData.IsPublished
	}
	if reqData.IsApproved != nil {
		if user.Role != models.RoleAdmin {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins can approve courses!", nil)
		}
		fields["is_approved"] = *reqData.IsApproved
	}

	updated, err := ctl.Catalog.UpdateCourse(id, fields)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", updated)
}

func (ctl *Controller) DeleteCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	course, err := ctl.Catalog.FindCourse(id)
	if err != nil {
		return err
	}
	if user.Role != models.RoleAdmin && course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
	if err := ctl.Catalog.DeleteCourse(id); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}
